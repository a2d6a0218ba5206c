package cart

import (
	"context"

	"github.com/noodly/storefront/lib/mylog"
	"github.com/noodly/storefront/lib/mystore"
)

const (
	// The cart snapshot lives under one fixed key and is overwritten
	// wholesale on every mutation.
	currentCartKey = "current"
)

// Repository gives the cart a typed persistence seam. The cart is not
// critical data: reads degrade to an empty cart, writes are best-effort.
type Repository struct {
	store  mystore.Store[Cart]
	logger mylog.Logger
}

func NewRepository(store mystore.Store[Cart], logger mylog.Logger) *Repository {
	return &Repository{
		store:  store,
		logger: logger,
	}
}

func (r *Repository) Load(c context.Context) Cart {
	cart, found, err := r.store.Get(c, currentCartKey)
	if err != nil {
		r.logger.Log(c, currentCartKey, mylog.SeverityWarn, "Error loading cart, starting empty: %s", err)
		return Cart{}
	}
	if !found {
		return Cart{}
	}
	return cart
}

func (r *Repository) Save(c context.Context, cart Cart) {
	err := r.store.Put(c, currentCartKey, cart)
	if err != nil {
		r.logger.Log(c, currentCartKey, mylog.SeverityWarn, "Error persisting cart: %s", err)
	}
}

func (r *Repository) Clear(c context.Context) {
	err := r.store.Delete(c, currentCartKey)
	if err != nil {
		r.logger.Log(c, currentCartKey, mylog.SeverityWarn, "Error erasing cart snapshot: %s", err)
	}
}
