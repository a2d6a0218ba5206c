package cart

import (
	"context"

	"github.com/noodly/storefront/lib/mylog"
)

type service struct {
	repo   *Repository
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(repo *Repository, logger mylog.Logger) *service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func (s *service) Get(c context.Context) Cart {
	return s.repo.Load(c)
}

func (s *service) AddOrMerge(c context.Context, line Line) Cart {
	s.logger.Log(c, line.ProductID, mylog.SeverityInfo, "Add %d x %s to cart", line.Quantity, line.Name)

	cart := s.repo.Load(c)
	cart.AddOrMerge(line)
	s.repo.Save(c, cart)

	return cart
}

func (s *service) SetQuantity(c context.Context, productID string, quantity int) Cart {
	s.logger.Log(c, productID, mylog.SeverityInfo, "Set cart quantity of %s to %d", productID, quantity)

	cart := s.repo.Load(c)
	cart.SetQuantity(productID, quantity)
	s.repo.Save(c, cart)

	return cart
}

func (s *service) Remove(c context.Context, productID string) Cart {
	s.logger.Log(c, productID, mylog.SeverityInfo, "Remove %s from cart", productID)

	cart := s.repo.Load(c)
	cart.Remove(productID)
	s.repo.Save(c, cart)

	return cart
}

// Clear empties the cart and erases the persisted snapshot, so a stale cart
// cannot be resubmitted after a successful order.
func (s *service) Clear(c context.Context) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Clear cart")

	s.repo.Clear(c)
}
