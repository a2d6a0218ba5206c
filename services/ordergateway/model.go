package ordergateway

import (
	"time"

	"github.com/noodly/storefront/services/cart"
	"github.com/noodly/storefront/services/catalog"
)

// Amounts are split tax-exclusive plus tax, with tax a fixed 5% of the
// gross line total.
const taxRate = 0.05

type OrderProduct struct {
	ProductID           string
	Name                string
	Image               string
	UnitPrice           float64
	Quantity            int
	SpecialInstructions string
}

func (p OrderProduct) LineTotal() float64 {
	return p.UnitPrice * float64(p.Quantity)
}

// OrderRequest is the composed payload handed to Submit. The product lines
// and tax breakdown come from the cart or a single product; the customer
// fields come from the checkout conversation.
type OrderRequest struct {
	TaxLessAmount       float64
	TaxAmount           float64
	Products            []OrderProduct
	FirstName           string
	PhoneNumber         string
	DeliveryDate        string
	DeliveryTime        string
	PaymentMethod       string
	VehicleModel        string
	VehicleColor        string
	VehiclePlate        string
	SpecialInstructions string
}

func (r OrderRequest) TotalAmount() float64 {
	total := 0.0
	for _, p := range r.Products {
		total += p.LineTotal()
	}
	return total
}

func (r OrderRequest) ProductCount() int {
	count := 0
	for _, p := range r.Products {
		count += p.Quantity
	}
	return count
}

// NewOrderRequestFromCart derives the line items and tax breakdown from the
// cart. The customer fields are left for the caller to fill in.
func NewOrderRequestFromCart(crt cart.Cart) OrderRequest {
	request := OrderRequest{}
	for _, line := range crt.Lines {
		lineTotal := line.LineTotal()
		lineTax := lineTotal * taxRate
		request.TaxLessAmount += lineTotal - lineTax
		request.TaxAmount += lineTax
		request.Products = append(request.Products, OrderProduct{
			ProductID:           line.ProductID,
			Name:                line.Name,
			Image:               line.Image,
			UnitPrice:           line.EffectiveUnitPrice(),
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		})
	}
	return request
}

// NewOrderRequestFromProduct derives a single-line payload for a direct
// product order.
func NewOrderRequestFromProduct(product catalog.Product, quantity int, specialInstructions string) OrderRequest {
	gross := product.EffectivePrice() * float64(quantity)
	tax := gross * taxRate
	return OrderRequest{
		TaxLessAmount: gross - tax,
		TaxAmount:     tax,
		Products: []OrderProduct{
			{
				ProductID:           product.ID,
				Name:                product.Name,
				Image:               product.Image,
				UnitPrice:           product.EffectivePrice(),
				Quantity:            quantity,
				SpecialInstructions: specialInstructions,
			},
		},
		SpecialInstructions: specialInstructions,
	}
}

// CustomerRef is the customer reference obtained through registration. The
// latest successful one is kept so orders can be correlated with the shop's
// customer records.
type CustomerRef struct {
	UserID       string
	PhoneNumber  string
	RegisteredAt time.Time
}

// OrderRecord is the durable snapshot of the most recently submitted order.
// It is what a later visit shows when only the status view is opened.
type OrderRecord struct {
	LocalOrderRef       string
	RemoteOrderID       string
	FirstName           string
	PhoneNumber         string
	VehicleModel        string
	VehicleColor        string
	VehiclePlate        string
	DeliveryDate        string
	DeliveryTime        string
	PaymentMethod       string
	SpecialInstructions string
	Products            []OrderProduct `datastore:",noindex"`
	TotalAmount         float64
	RawResponse         string `datastore:",noindex"`
	SubmittedAt         time.Time
}
