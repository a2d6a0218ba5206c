package ordergateway

import (
	"context"
	"fmt"

	"github.com/noodly/storefront/lib/myerrors"
	"github.com/noodly/storefront/lib/mylog"
	"github.com/noodly/storefront/lib/mypublisher"
	"github.com/noodly/storefront/lib/mystore"
	"github.com/noodly/storefront/lib/mytime"
	"github.com/noodly/storefront/lib/myuuid"
	"github.com/noodly/storefront/services/orderevents"
	"github.com/noodly/storefront/services/shopapi"
	"github.com/noodly/storefront/services/statustracker"
)

const (
	lastOrderKey   = "last"
	customerRefKey = "last"

	// Registration failure never blocks an order: this customer reference
	// is substituted when no real one could be obtained.
	fallbackCustomerRef = "352"
	defaultFirstName    = "Customer"

	// The shop operates a single pickup location, so the order payload
	// carries fixed location and delivery attributes.
	fixedAddressID      = "1"
	fixedLat            = "24.483019805499488"
	fixedLng            = "54.349997706376534"
	fixedDeliveryCharge = "10"
	fixedUnitID         = 1602
	fixedCartID         = 1
)

type SubmitResult struct {
	LocalOrderRef string
	RemoteOrderID string
	RawResponse   string
}

//go:generate mockgen -source=service.go -package ordergateway -destination poller_mock.go StatusPoller
type StatusPoller interface {
	Poll(c context.Context, remoteOrderID string) (statustracker.OrderStatus, error)
}

type service struct {
	cfg           shopapi.Config
	caller        shopapi.Caller
	recordStore   mystore.Store[OrderRecord]
	customerStore mystore.Store[CustomerRef]
	poller        StatusPoller
	publisher     mypublisher.Publisher
	uuider        myuuid.UUIDer
	nower         mytime.Nower
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cfg shopapi.Config, caller shopapi.Caller, recordStore mystore.Store[OrderRecord], customerStore mystore.Store[CustomerRef], poller StatusPoller, publisher mypublisher.Publisher, uuider myuuid.UUIDer, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		cfg:           cfg,
		caller:        caller,
		recordStore:   recordStore,
		customerStore: customerStore,
		poller:        poller,
		publisher:     publisher,
		uuider:        uuider,
		nower:         nower,
		logger:        logger,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	return nil
}

// Submit registers the customer, sends the order and persists a snapshot of
// the result. Exactly one registration attempt and one save attempt happen
// per call: resubmission protection is the caller's concern.
func (s *service) Submit(c context.Context, request OrderRequest) (SubmitResult, error) {
	localOrderRef := s.uuider.Create()

	s.logger.Log(c, localOrderRef, mylog.SeverityInfo, "Submit order %s with %d products", localOrderRef, len(request.Products))

	customerRef := s.registerCustomer(c, request)

	resp, err := s.caller.Call(c, s.composeSaveOrderRequest(request, customerRef))
	if err != nil {
		return SubmitResult{}, myerrors.NewUnavailableError(fmt.Errorf("error submitting order %s: %s", localOrderRef, err))
	}

	if resp.IsExplicitFailure() {
		return SubmitResult{}, myerrors.NewUnavailableError(fmt.Errorf("order %s rejected: %s", localOrderRef, resp.ResponseText))
	}

	remoteOrderID, found := resp.CodeElement(1)
	if !found {
		return SubmitResult{}, myerrors.NewInternalError(fmt.Errorf("order %s accepted but response carries no order id", localOrderRef))
	}

	s.logger.Log(c, localOrderRef, mylog.SeverityInfo, "Order %s submitted as remote order %s", localOrderRef, remoteOrderID)

	record := OrderRecord{
		LocalOrderRef:       localOrderRef,
		RemoteOrderID:       remoteOrderID,
		FirstName:           request.FirstName,
		PhoneNumber:         request.PhoneNumber,
		VehicleModel:        request.VehicleModel,
		VehicleColor:        request.VehicleColor,
		VehiclePlate:        request.VehiclePlate,
		DeliveryDate:        request.DeliveryDate,
		DeliveryTime:        request.DeliveryTime,
		PaymentMethod:       request.PaymentMethod,
		SpecialInstructions: request.SpecialInstructions,
		Products:            request.Products,
		TotalAmount:         request.TotalAmount(),
		RawResponse:         string(resp.Raw),
		SubmittedAt:         s.nower.Now(),
	}
	err = s.recordStore.Put(c, lastOrderKey, record)
	if err != nil {
		s.logger.Log(c, localOrderRef, mylog.SeverityWarn, "Error persisting order record %s: %s", localOrderRef, err)
	}

	err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderSubmitted{
		LocalOrderRef: localOrderRef,
		RemoteOrderID: remoteOrderID,
		TotalAmount:   record.TotalAmount,
		ProductCount:  request.ProductCount(),
		PhoneNumber:   request.PhoneNumber,
	})
	if err != nil {
		s.logger.Log(c, localOrderRef, mylog.SeverityWarn, "Error publishing order-submitted event %s: %s", localOrderRef, err)
	}

	// Warm the status tracker so the caller's first status read already
	// has a fresh snapshot. A failed initial poll is not fatal.
	_, err = s.poller.Poll(c, remoteOrderID)
	if err != nil {
		s.logger.Log(c, localOrderRef, mylog.SeverityWarn, "Initial status poll of order %s failed: %s", remoteOrderID, err)
	}

	return SubmitResult{
		LocalOrderRef: localOrderRef,
		RemoteOrderID: remoteOrderID,
		RawResponse:   string(resp.Raw),
	}, nil
}

// registerCustomer obtains a customer reference for the order. Any failure
// is absorbed: the fallback reference keeps order placement unblocked.
func (s *service) registerCustomer(c context.Context, request OrderRequest) string {
	firstName := request.FirstName
	if firstName == "" {
		firstName = defaultFirstName
	}

	resp, err := s.caller.Call(c, s.cfg.NewRegistrationRequest(firstName, formatPhoneNumber(request.PhoneNumber)))
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Registration failed, using fallback customer ref: %s", err)
		return fallbackCustomerRef
	}

	if resp.IsExplicitFailure() {
		s.logger.Log(c, "", mylog.SeverityWarn, "Registration rejected (%s), using fallback customer ref", resp.ResponseText)
		return fallbackCustomerRef
	}

	userID, found := resp.RegisteredUserID()
	if !found {
		s.logger.Log(c, "", mylog.SeverityWarn, "Registration response carries no user id, using fallback customer ref")
		return fallbackCustomerRef
	}

	err = s.customerStore.Put(c, customerRefKey, CustomerRef{
		UserID:       userID,
		PhoneNumber:  request.PhoneNumber,
		RegisteredAt: s.nower.Now(),
	})
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error persisting customer ref: %s", err)
	}

	return userID
}

func (s *service) composeSaveOrderRequest(request OrderRequest, customerRef string) shopapi.SaveOrderRequest {
	saveRequest := s.cfg.NewSaveOrderRequest()
	saveRequest.TaxLessAmount = fmt.Sprintf("%.2f", request.TaxLessAmount)
	saveRequest.TaxAmount = request.TaxAmount
	saveRequest.AddressID = fixedAddressID
	saveRequest.PmID = customerRef
	saveRequest.DeliveryTime = request.DeliveryTime
	saveRequest.Lat = fixedLat
	saveRequest.Lng = fixedLng
	saveRequest.DeliveryCharge = fixedDeliveryCharge
	saveRequest.VehicleInfo = request.VehicleModel

	for _, p := range request.Products {
		saveRequest.Products = append(saveRequest.Products, shopapi.SaveOrderProduct{
			ID:           p.ProductID,
			Name:         p.Name,
			IsMultiUnit:  "FALSE",
			UnitID:       fixedUnitID,
			Price:        p.UnitPrice,
			ProductImage: p.Image,
			Quantity:     p.Quantity,
			Comments:     "",
			Addons:       []string{},
			Customize:    "1",
			CartID:       fixedCartID,
			TotalPrice:   fmt.Sprintf("%.2f", p.LineTotal()),
		})
	}

	return saveRequest
}

// LastOrder returns the persisted snapshot of the most recent order, if any.
func (s *service) LastOrder(c context.Context) (OrderRecord, bool, error) {
	return s.recordStore.Get(c, lastOrderKey)
}
