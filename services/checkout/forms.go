package checkout

import (
	"fmt"
	"net/url"

	formcodec "github.com/go-playground/form/v4"
)

// Each step owns its own fields: a form posted in one state never touches
// fields owned by another state, so passed steps stay frozen until the
// customer explicitly goes back.

type SelectionForm struct {
	Quantity            int    `form:"quantity"`
	SpecialInstructions string `form:"specialInstructions"`
}

type ContactForm struct {
	FirstName   string `form:"firstName"`
	PhoneNumber string `form:"phoneNumber"`
}

type LogisticsForm struct {
	VehicleModel  string `form:"vehicleModel"`
	VehicleColor  string `form:"vehicleColor"`
	VehiclePlate  string `form:"vehiclePlate"`
	DeliveryDate  string `form:"deliveryDate"`
	DeliveryTime  string `form:"deliveryTime"`
	PaymentMethod string `form:"paymentMethod"`
}

func decodeForm(target any, values url.Values) error {
	err := formcodec.NewDecoder().Decode(target, values)
	if err != nil {
		return fmt.Errorf("error decoding form: %s", err)
	}
	return nil
}

// applyForm copies the posted values for the fields the current state owns.
func (d *Draft) applyForm(values url.Values) error {
	switch d.State {
	case StateSelection:
		input := SelectionForm{}
		err := decodeForm(&input, values)
		if err != nil {
			return err
		}
		d.Quantity = input.Quantity
		d.SpecialInstructions = input.SpecialInstructions
	case StateContact:
		input := ContactForm{}
		err := decodeForm(&input, values)
		if err != nil {
			return err
		}
		d.FirstName = input.FirstName
		d.PhoneNumber = input.PhoneNumber
	case StateLogistics:
		input := LogisticsForm{}
		err := decodeForm(&input, values)
		if err != nil {
			return err
		}
		d.VehicleModel = input.VehicleModel
		d.VehicleColor = input.VehicleColor
		d.VehiclePlate = input.VehiclePlate
		d.DeliveryDate = input.DeliveryDate
		d.DeliveryTime = input.DeliveryTime
		if input.PaymentMethod != "" {
			d.PaymentMethod = input.PaymentMethod
		}
	default:
		// review and confirmed own no editable fields
	}
	return nil
}
