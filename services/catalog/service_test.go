package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/noodly/storefront/lib/mylog"
	"github.com/noodly/storefront/lib/mytime"
	"github.com/noodly/storefront/services/shopapi"
)

var (
	cfg = shopapi.Config{
		BaseURL:     "https://shopapi.example.com/app_request/get_data",
		ShopID:      "17",
		AccessToken: "secret",
		AppID:       "16",
		Language:    "english",
	}
)

func listResponse(payload string) shopapi.Response {
	var resp shopapi.Response
	_ = json.Unmarshal([]byte(fmt.Sprintf(`{"response_code":"1","response_data":[2,%s]}`, payload)), &resp)
	return resp
}

func TestCatalogService(t *testing.T) {

	t.Run("List categories", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, _ := setup(t, ctrl)

		// given
		caller.EXPECT().Call(gomock.Any(), cfg.NewCategoryRequest()).Return(
			listResponse(`[{"category_id":"7","category_name_eng":"Noodles","category_description":"Hand pulled"}]`), nil)

		// when
		categories, err := svc.ListCategories(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, []Category{{ID: "7", Name: "Noodles", Description: "Hand pulled"}}, categories)
	})

	t.Run("List categories uses cache on second call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, nower := setup(t, ctrl)

		// given: one remote fetch only
		caller.EXPECT().Call(gomock.Any(), cfg.NewCategoryRequest()).Return(
			listResponse(`[{"category_id":"7","category_name_eng":"Noodles"}]`), nil).Times(1)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// when
		first, err := svc.ListCategories(ctx)
		assert.NoError(t, err)
		second, err := svc.ListCategories(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("List products maps wire shapes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, _ := setup(t, ctrl)

		// given
		caller.EXPECT().Call(gomock.Any(), cfg.NewProductRequest("7")).Return(
			listResponse(`[{"product_id":"42","product_name":"Soya","price":"12.50","discounted_price":"10.00","category_id":"7"}]`), nil)

		// when
		products, err := svc.ListProducts(ctx, "7")

		// then
		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, "Soya", products[0].Name)
		assert.Equal(t, 12.50, products[0].Price)
		assert.Equal(t, 10.00, products[0].DiscountedPrice)
		assert.Equal(t, 10.00, products[0].EffectivePrice())
	})

	t.Run("Explicit api failure surfaces as unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, _ := setup(t, ctrl)

		// given
		var failure shopapi.Response
		_ = json.Unmarshal([]byte(`{"response_code":"2","response_text":"shop closed"}`), &failure)
		caller.EXPECT().Call(gomock.Any(), cfg.NewCategoryRequest()).Return(failure, nil)

		// when
		_, err := svc.ListCategories(ctx)

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "shop closed")
	})

	t.Run("Missing list payload degrades to empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, _ := setup(t, ctrl)

		// given
		var resp shopapi.Response
		_ = json.Unmarshal([]byte(`{"response_code":"1","response_data":{}}`), &resp)
		caller.EXPECT().Call(gomock.Any(), cfg.NewProductRequest("")).Return(resp, nil)

		// when
		products, err := svc.ListProducts(ctx, "")

		// then
		assert.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Get product by id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, _ := setup(t, ctrl)

		// given
		caller.EXPECT().Call(gomock.Any(), cfg.NewProductRequest("")).Return(
			listResponse(`[{"product_id":"42","product_name":"Soya","price":"12.50"},{"product_id":"43","product_name":"Korean","price":"14.00"}]`), nil)

		// when
		product, found, err := svc.GetProduct(ctx, "43")

		// then
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Korean", product.Name)
	})
}

func TestTTLCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nower := mytime.NewMockNower(ctrl)
	cache := newTTLCache[string](time.Minute, nower)

	// fresh entry is served
	nower.EXPECT().Now().Return(mytime.ExampleTime)
	cache.put("key", "value")

	nower.EXPECT().Now().Return(mytime.ExampleTime.Add(30 * time.Second))
	got, found := cache.get("key")
	assert.True(t, found)
	assert.Equal(t, "value", got)

	// expired entry is dropped
	nower.EXPECT().Now().Return(mytime.ExampleTime.Add(2 * time.Minute))
	_, found = cache.get("key")
	assert.False(t, found)
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *service, *shopapi.MockCaller, *mytime.MockNower) {
	c := context.TODO()

	caller := shopapi.NewMockCaller(ctrl)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	svc := NewService(cfg, caller, nower, mylog.New("catalog"))

	return c, svc, caller, nower
}
