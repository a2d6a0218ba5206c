package catalog

import "encoding/json"

type Category struct {
	ID          string
	Name        string
	Image       string
	Description string
}

type Product struct {
	ID                 string
	CategoryID         string
	Name               string
	Image              string
	Price              float64
	DiscountedPrice    float64
	DiscountPercentage float64
	Description        string
}

// EffectivePrice is the price a buyer actually pays.
func (p Product) EffectivePrice() float64 {
	if p.DiscountedPrice > 0 {
		return p.DiscountedPrice
	}
	return p.Price
}

// The api returns prices as strings and falls back from the english name to
// the generic one, so decoding goes through these wire shapes.
type wireCategory struct {
	CategoryID          string `json:"category_id"`
	CategoryName        string `json:"category_name"`
	CategoryNameEng     string `json:"category_name_eng"`
	CategoryImgThumb    string `json:"category_img_thumb"`
	CategoryDescription string `json:"category_description"`
}

func (w wireCategory) toCategory() Category {
	name := w.CategoryNameEng
	if name == "" {
		name = w.CategoryName
	}
	return Category{
		ID:          w.CategoryID,
		Name:        name,
		Image:       w.CategoryImgThumb,
		Description: w.CategoryDescription,
	}
}

type wireProduct struct {
	ProductID       string      `json:"product_id"`
	CategoryID      string      `json:"category_id"`
	ProductName     string      `json:"product_name"`
	ProductNameEng  string      `json:"product_name_eng"`
	ProductImgThumb string      `json:"product_img_thumb"`
	Price           json.Number `json:"price"`
	DiscountedPrice json.Number `json:"discounted_price"`
	DiscPercentage  json.Number `json:"disc_percentage"`
	UnitDescription string      `json:"unit_description"`
}

func (w wireProduct) toProduct() Product {
	name := w.ProductNameEng
	if name == "" {
		name = w.ProductName
	}
	categoryID := w.CategoryID
	if categoryID == "" {
		categoryID = "0"
	}
	return Product{
		ID:                 w.ProductID,
		CategoryID:         categoryID,
		Name:               name,
		Image:              w.ProductImgThumb,
		Price:              numberOrZero(w.Price),
		DiscountedPrice:    numberOrZero(w.DiscountedPrice),
		DiscountPercentage: numberOrZero(w.DiscPercentage),
		Description:        w.UnitDescription,
	}
}

func numberOrZero(n json.Number) float64 {
	f, err := n.Float64()
	if err != nil {
		return 0
	}
	return f
}
