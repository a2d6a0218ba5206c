package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/noodly/storefront/lib/myerrors"
	"github.com/noodly/storefront/lib/mylog"
	"github.com/noodly/storefront/lib/mytime"
	"github.com/noodly/storefront/services/shopapi"
)

const (
	listingCacheTTL = 5 * time.Minute
)

type service struct {
	cfg           shopapi.Config
	caller        shopapi.Caller
	categoryCache *ttlCache[[]Category]
	productCache  *ttlCache[[]Product]
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cfg shopapi.Config, caller shopapi.Caller, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		cfg:           cfg,
		caller:        caller,
		categoryCache: newTTLCache[[]Category](listingCacheTTL, nower),
		productCache:  newTTLCache[[]Product](listingCacheTTL, nower),
		logger:        logger,
	}
}

func (s *service) ListCategories(c context.Context) ([]Category, error) {
	if cached, found := s.categoryCache.get("all"); found {
		return cached, nil
	}

	resp, err := s.caller.Call(c, s.cfg.NewCategoryRequest())
	if err != nil {
		return nil, catalogUnavailable(err)
	}
	if resp.IsExplicitFailure() {
		return nil, catalogUnavailable(fmt.Errorf("category listing failed: %s", resp.ResponseText))
	}

	var wire []wireCategory
	err = resp.DataElement(1, &wire)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "No categories in response: %s", err)
		return []Category{}, nil
	}

	categories := make([]Category, 0, len(wire))
	for _, w := range wire {
		categories = append(categories, w.toCategory())
	}

	s.categoryCache.put("all", categories)

	return categories, nil
}

func (s *service) ListProducts(c context.Context, categoryID string) ([]Product, error) {
	cacheKey := "category_" + categoryID
	if cached, found := s.productCache.get(cacheKey); found {
		return cached, nil
	}

	resp, err := s.caller.Call(c, s.cfg.NewProductRequest(categoryID))
	if err != nil {
		return nil, catalogUnavailable(err)
	}
	if resp.IsExplicitFailure() {
		return nil, catalogUnavailable(fmt.Errorf("product listing failed: %s", resp.ResponseText))
	}

	var wire []wireProduct
	err = resp.DataElement(1, &wire)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "No products in response: %s", err)
		return []Product{}, nil
	}

	products := make([]Product, 0, len(wire))
	for _, w := range wire {
		products = append(products, w.toProduct())
	}

	s.productCache.put(cacheKey, products)

	return products, nil
}

func catalogUnavailable(err error) error {
	return myerrors.NewUnavailableError(fmt.Errorf("catalog unavailable: %s", err))
}

// GetProduct serves the checkout flow, which needs one product by id.
func (s *service) GetProduct(c context.Context, productID string) (Product, bool, error) {
	products, err := s.ListProducts(c, "")
	if err != nil {
		return Product{}, false, err
	}

	for _, p := range products {
		if p.ID == productID {
			return p, true, nil
		}
	}

	return Product{}, false, nil
}
