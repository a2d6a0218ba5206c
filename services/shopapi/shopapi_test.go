package shopapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseEnvelope(t *testing.T) {

	t.Run("String response code", func(t *testing.T) {
		var resp Response
		err := json.Unmarshal([]byte(`{"response_code":"1","response_text":"ok"}`), &resp)
		assert.NoError(t, err)

		assert.Equal(t, "1", resp.Code())
		assert.False(t, resp.IsExplicitFailure())

		_, found := resp.CodeElement(0)
		assert.False(t, found)
	})

	t.Run("Explicit failure", func(t *testing.T) {
		var resp Response
		err := json.Unmarshal([]byte(`{"response_code":"2","response_text":"order not found"}`), &resp)
		assert.NoError(t, err)

		assert.True(t, resp.IsExplicitFailure())
		assert.Equal(t, "order not found", resp.ResponseText)
	})

	t.Run("Array response code on save-order success", func(t *testing.T) {
		var resp Response
		err := json.Unmarshal([]byte(`{"response_code":["ord_159","159","Delivered within 30 minutes"]}`), &resp)
		assert.NoError(t, err)

		assert.Equal(t, "", resp.Code())
		assert.False(t, resp.IsExplicitFailure())

		remoteID, found := resp.CodeElement(1)
		assert.True(t, found)
		assert.Equal(t, "159", remoteID)

		estimate, found := resp.CodeElement(2)
		assert.True(t, found)
		assert.Equal(t, "Delivered within 30 minutes", estimate)

		_, found = resp.CodeElement(3)
		assert.False(t, found)
	})

	t.Run("List payload is second data element", func(t *testing.T) {
		var resp Response
		err := json.Unmarshal([]byte(`{"response_code":"1","response_data":[5,[{"category_id":"7","category_name_eng":"Noodles"}]]}`), &resp)
		assert.NoError(t, err)

		var categories []struct {
			CategoryID      string `json:"category_id"`
			CategoryNameEng string `json:"category_name_eng"`
		}
		err = resp.DataElement(1, &categories)
		assert.NoError(t, err)
		assert.Len(t, categories, 1)
		assert.Equal(t, "7", categories[0].CategoryID)
	})

	t.Run("Registration user id", func(t *testing.T) {
		var resp Response
		err := json.Unmarshal([]byte(`{"response_code":"1","response_data":{"response_data":{"user_id":412}}}`), &resp)
		assert.NoError(t, err)

		userID, found := resp.RegisteredUserID()
		assert.True(t, found)
		assert.Equal(t, "412", userID)
	})

	t.Run("Registration without user id", func(t *testing.T) {
		var resp Response
		err := json.Unmarshal([]byte(`{"response_code":"1","response_data":{}}`), &resp)
		assert.NoError(t, err)

		_, found := resp.RegisteredUserID()
		assert.False(t, found)
	})
}

func TestRequestConstruction(t *testing.T) {
	cfg := Config{
		BaseURL:     "https://shopapi.example.com/app_request/get_data",
		ShopID:      "17",
		AccessToken: "secret",
		AppID:       "16",
		Language:    "english",
	}

	t.Run("Category request", func(t *testing.T) {
		req := cfg.NewCategoryRequest()
		assert.Equal(t, RequestTypeCategory, req.RequestType)
		assert.Equal(t, "17", req.ShopID)
		assert.Equal(t, "secret", req.AccessToken)
		assert.Equal(t, "1", req.PageNumber)
	})

	t.Run("Product request defaults to all categories", func(t *testing.T) {
		req := cfg.NewProductRequest("")
		assert.Equal(t, "0", req.CategoryID)
		assert.Equal(t, "0", req.SubCategoryID)
		assert.Equal(t, 30, req.ItemPerPage)
	})

	t.Run("Status request", func(t *testing.T) {
		req := cfg.NewLastStatusRequest("159")
		assert.Equal(t, RequestTypeLastStatus, req.RequestType)
		assert.Equal(t, "159", req.OrderID)
		assert.Equal(t, "1", req.DomainID)
	})
}
