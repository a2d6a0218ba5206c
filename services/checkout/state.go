package checkout

import (
	"fmt"

	"github.com/noodly/storefront/services/catalog"
)

// State is the wizard's position. Transitions are strictly linear: one step
// forward when the current step's precondition holds, one step back from
// any middle step, and confirmation only through a successful submission.
type State int

const (
	StateSelection State = iota + 1
	StateContact
	StateLogistics
	StateReview
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateSelection:
		return "selection"
	case StateContact:
		return "contact"
	case StateLogistics:
		return "logistics"
	case StateReview:
		return "review"
	case StateConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// Mode determines what the wizard is operating on and where step one leads.
type Mode int

const (
	// ModeDirectOrder checks out a single product from step one onwards.
	ModeDirectOrder Mode = iota
	// ModeAddToCart only picks a quantity: completing step one merges the
	// product into the cart and terminates the wizard.
	ModeAddToCart
	// ModeCart checks out the full current cart.
	ModeCart
)

// Draft is one checkout attempt. It lives in memory only and is discarded
// on close or once confirmed and superseded by the durable order record.
type Draft struct {
	UID     string
	Mode    Mode
	State   State
	Product catalog.Product

	Quantity            int
	SpecialInstructions string
	FirstName           string
	PhoneNumber         string
	VehicleModel        string
	VehicleColor        string
	VehiclePlate        string
	DeliveryDate        string
	DeliveryTime        string
	PaymentMethod       string

	LocalOrderRef string
	RemoteOrderID string
	LastError     string
}

// advanceGuard is the per-state precondition for moving one step forward.
func (d Draft) advanceGuard() error {
	switch d.State {
	case StateSelection:
		if d.Quantity < 1 {
			return fmt.Errorf("quantity must be at least 1")
		}
	case StateContact:
		if len(d.PhoneNumber) < 8 {
			return fmt.Errorf("phone number must be at least 8 characters")
		}
	case StateLogistics:
		if d.VehicleModel == "" {
			return fmt.Errorf("vehicle identification is required")
		}
	case StateReview:
		return fmt.Errorf("an order must be submitted to leave the review step")
	case StateConfirmed:
		return fmt.Errorf("the order is already confirmed")
	}
	return nil
}

// Advance moves the draft one step forward when the current step's
// precondition holds; otherwise the state is left unchanged.
func (d *Draft) Advance() error {
	err := d.advanceGuard()
	if err != nil {
		return err
	}
	d.State++
	return nil
}

// Back moves one step backward. Legal from any middle step, a no-op on the
// first and the confirmed step, and never triggers network calls.
func (d *Draft) Back() {
	if d.State > StateSelection && d.State < StateConfirmed {
		d.State--
	}
}

// ConfirmSubmission is the only way into the confirmed state.
func (d *Draft) ConfirmSubmission(localOrderRef string, remoteOrderID string) {
	d.LocalOrderRef = localOrderRef
	d.RemoteOrderID = remoteOrderID
	d.LastError = ""
	d.State = StateConfirmed
}
