package shopapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// The shop API is a single JSON-over-POST endpoint. Every request is tagged
// with a request_type and carries the shop identifier and access token.
const (
	RequestTypeCategory     = "category"
	RequestTypeProduct      = "product"
	RequestTypeRegistration = "user_registration"
	RequestTypeSaveOrder    = "save_order"
	RequestTypeLastStatus   = "get_last_status"

	CodeSuccess         = "1"
	CodeExplicitFailure = "2"
)

type Config struct {
	BaseURL     string
	ShopID      string
	AccessToken string
	AppID       string
	Language    string
}

type BaseRequest struct {
	RequestType string `json:"request_type"`
	ShopID      string `json:"shop_id"`
	AccessToken string `json:"access_token"`
	Language    string `json:"language,omitempty"`
}

func (cfg Config) base(requestType string) BaseRequest {
	return BaseRequest{
		RequestType: requestType,
		ShopID:      cfg.ShopID,
		AccessToken: cfg.AccessToken,
		Language:    cfg.Language,
	}
}

type CategoryRequest struct {
	BaseRequest
	PageNumber  string `json:"page_number"`
	ItemPerPage string `json:"item_per_page"`
}

func (cfg Config) NewCategoryRequest() CategoryRequest {
	return CategoryRequest{
		BaseRequest: cfg.base(RequestTypeCategory),
		PageNumber:  "1",
		ItemPerPage: "10",
	}
}

type ProductRequest struct {
	BaseRequest
	CategoryID    string `json:"category_id"`
	SubCategoryID string `json:"sub_category_id"`
	PageNumber    int    `json:"page_number"`
	ItemPerPage   int    `json:"item_per_page"`
}

func (cfg Config) NewProductRequest(categoryID string) ProductRequest {
	if categoryID == "" {
		categoryID = "0"
	}
	return ProductRequest{
		BaseRequest:   cfg.base(RequestTypeProduct),
		CategoryID:    categoryID,
		SubCategoryID: "0",
		PageNumber:    1,
		ItemPerPage:   30,
	}
}

type RegistrationRequest struct {
	BaseRequest
	AppID     string `json:"app_id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	MobileNo  string `json:"mobile_no"`
}

func (cfg Config) NewRegistrationRequest(firstName string, mobileNo string) RegistrationRequest {
	return RegistrationRequest{
		BaseRequest: cfg.base(RequestTypeRegistration),
		AppID:       cfg.AppID,
		FirstName:   firstName,
		Email:       "",
		MobileNo:    mobileNo,
	}
}

type SaveOrderRequest struct {
	BaseRequest
	TaxLessAmount        string             `json:"tax_less_amount"`
	TaxAmount            float64            `json:"tax_amount"`
	Products             []SaveOrderProduct `json:"products"`
	AddressID            string             `json:"address_id"`
	PmID                 string             `json:"pm_id"`
	DeliveryTime         string             `json:"delivery_time"`
	PickupTime           string             `json:"pickup_time"`
	Lat                  string             `json:"lat"`
	Lng                  string             `json:"lng"`
	DeliveryTimeRequired string             `json:"delivery_time_required"`
	PickupTimeRequired   string             `json:"pickup_time_required"`
	DeliveryCharge       string             `json:"delivery_charge"`
	VehicleInfo          string             `json:"vehicle_info"`
}

func (cfg Config) NewSaveOrderRequest() SaveOrderRequest {
	return SaveOrderRequest{
		BaseRequest: cfg.base(RequestTypeSaveOrder),
	}
}

type SaveOrderProduct struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	IsMultiUnit     string   `json:"is_multi_unit"`
	UnitID          int      `json:"unit_id"`
	Price           float64  `json:"price"`
	ProductImage    string   `json:"product_image"`
	Quantity        int      `json:"quantity"`
	Comments        string   `json:"comments"`
	Addons          []string `json:"addons"`
	Customize       string   `json:"customize"`
	CartID          int      `json:"cart_id"`
	AddonTotalPrice float64  `json:"addon_total_price"`
	TotalPrice      string   `json:"total_price"`
}

type LastStatusRequest struct {
	BaseRequest
	OrderID  string `json:"order_id"`
	DomainID string `json:"domain_id"`
}

func (cfg Config) NewLastStatusRequest(orderID string) LastStatusRequest {
	return LastStatusRequest{
		BaseRequest: cfg.base(RequestTypeLastStatus),
		OrderID:     orderID,
		DomainID:    "1",
	}
}

// Response is the API's envelope. response_code is polymorphic: a plain
// string ("1"/"2") on list and registration calls, an array of strings on
// successful save_order and status calls.
type Response struct {
	ResponseCode json.RawMessage `json:"response_code"`
	ResponseText string          `json:"response_text"`
	ResponseData json.RawMessage `json:"response_data"`

	Raw []byte `json:"-"`
}

func (r Response) Code() string {
	var code string
	if json.Unmarshal(r.ResponseCode, &code) == nil {
		return code
	}
	return ""
}

func (r Response) IsExplicitFailure() bool {
	return r.Code() == CodeExplicitFailure
}

// CodeElement returns element i of the array form of response_code.
func (r Response) CodeElement(i int) (string, bool) {
	var codes []string
	err := json.Unmarshal(r.ResponseCode, &codes)
	if err != nil || i < 0 || i >= len(codes) {
		return "", false
	}
	return codes[i], true
}

// DataElement decodes element i of the array form of response_data into v.
// Category and product listings put their payload at element 1.
func (r Response) DataElement(i int, v any) error {
	var elems []json.RawMessage
	err := json.Unmarshal(r.ResponseData, &elems)
	if err != nil {
		return fmt.Errorf("response_data is not an array: %s", err)
	}
	if i < 0 || i >= len(elems) {
		return fmt.Errorf("response_data has no element %d", i)
	}
	return json.Unmarshal(elems[i], v)
}

// RegisteredUserID digs the user_id out of a registration response:
// response_data.response_data.user_id.
func (r Response) RegisteredUserID() (string, bool) {
	var nested struct {
		ResponseData struct {
			UserID json.Number `json:"user_id"`
		} `json:"response_data"`
	}
	err := json.Unmarshal(r.ResponseData, &nested)
	if err != nil || nested.ResponseData.UserID.String() == "" {
		return "", false
	}
	return nested.ResponseData.UserID.String(), true
}

//go:generate mockgen -source=api.go -package shopapi -destination caller_mock.go Caller
type Caller interface {
	Call(c context.Context, request any) (Response, error)
}

// TransportError marks failures of the transport itself (connection refused,
// timeout, aborted context) as opposed to an answer from the API. Only
// transport failures are worth retrying.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
