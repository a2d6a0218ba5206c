package checkout

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/noodly/storefront/lib/myerrors"
	"github.com/noodly/storefront/lib/mylog"
	"github.com/noodly/storefront/lib/mytime"
	"github.com/noodly/storefront/lib/myuuid"
	"github.com/noodly/storefront/services/cart"
	"github.com/noodly/storefront/services/catalog"
	"github.com/noodly/storefront/services/ordergateway"
	"github.com/noodly/storefront/services/statustracker"
)

const (
	defaultPaymentMethod = "COD"

	// draftTTL bounds how long an untouched checkout stays around.
	// A walked-away wizard is discarded on the next access or creation.
	draftTTL = 30 * time.Minute
)

//go:generate mockgen -source=service.go -package checkout -destination deps_mock.go Catalog,CartService,OrderGateway,StatusTracker

type Catalog interface {
	GetProduct(c context.Context, productID string) (catalog.Product, bool, error)
}

type CartService interface {
	Get(c context.Context) cart.Cart
	AddOrMerge(c context.Context, line cart.Line) cart.Cart
	Clear(c context.Context)
}

type OrderGateway interface {
	Submit(c context.Context, request ordergateway.OrderRequest) (ordergateway.SubmitResult, error)
	LastOrder(c context.Context) (ordergateway.OrderRecord, bool, error)
}

type StatusTracker interface {
	Poll(c context.Context, remoteOrderID string) (statustracker.OrderStatus, error)
	LastKnown(c context.Context) (statustracker.OrderStatus, bool, error)
	StartAutoRefresh(c context.Context, remoteOrderID string) func()
}

// draftEntry is a Draft plus its bookkeeping. All fields are guarded by the
// service mutex; submitting marks an in-flight order submission so that no
// concurrent request can mutate or resubmit the draft meanwhile.
type draftEntry struct {
	draft      Draft
	submitting bool
	lastActive time.Time
}

type service struct {
	catalog     Catalog
	cartService CartService
	gateway     OrderGateway
	tracker     StatusTracker
	uuider      myuuid.UUIDer
	nower       mytime.Nower
	logger      mylog.Logger

	mu     sync.Mutex
	drafts map[string]*draftEntry

	// At most one auto-refresh loop runs at a time, for the order named
	// by refreshOrderID. Starting a loop cancels the previous one.
	refreshCancel  func()
	refreshOrderID string
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(catalogService Catalog, cartService CartService, gateway OrderGateway, tracker StatusTracker, uuider myuuid.UUIDer, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		catalog:     catalogService,
		cartService: cartService,
		gateway:     gateway,
		tracker:     tracker,
		uuider:      uuider,
		nower:       nower,
		logger:      logger,
		drafts:      map[string]*draftEntry{},
	}
}

// StartProduct opens a fresh wizard for a single product.
func (s *service) StartProduct(c context.Context, productID string, mode Mode) (Draft, error) {
	product, found, err := s.catalog.GetProduct(c, productID)
	if err != nil {
		return Draft{}, err
	}
	if !found {
		return Draft{}, myerrors.NewNotFoundError(fmt.Errorf("product %s not found", productID))
	}

	draft := Draft{
		UID:           s.uuider.Create(),
		Mode:          mode,
		State:         StateSelection,
		Product:       product,
		Quantity:      1,
		PaymentMethod: defaultPaymentMethod,
	}
	s.putDraft(draft)

	s.logger.Log(c, draft.UID, mylog.SeverityInfo, "Started checkout %s for product %s", draft.UID, productID)

	return draft, nil
}

// StartCart opens a fresh wizard over the full current cart.
func (s *service) StartCart(c context.Context) (Draft, error) {
	crt := s.cartService.Get(c)
	if crt.IsEmpty() {
		return Draft{}, myerrors.NewInvalidInputError(fmt.Errorf("cart is empty"))
	}

	draft := Draft{
		UID:           s.uuider.Create(),
		Mode:          ModeCart,
		State:         StateSelection,
		Quantity:      crt.Count(),
		PaymentMethod: defaultPaymentMethod,
	}
	s.putDraft(draft)

	s.logger.Log(c, draft.UID, mylog.SeverityInfo, "Started cart checkout %s with %d items", draft.UID, crt.Count())

	return draft, nil
}

// StartStatusView opens the wizard directly on the confirmed step, showing
// the most recently submitted order, and begins auto-refreshing its status.
// Any refresh loop started by a previous view is cancelled first.
func (s *service) StartStatusView(c context.Context) (Draft, error) {
	record, found, err := s.gateway.LastOrder(c)
	if err != nil {
		return Draft{}, err
	}
	if !found {
		return Draft{}, myerrors.NewNotFoundError(fmt.Errorf("no order has been submitted yet"))
	}

	draft := Draft{
		UID:                 s.uuider.Create(),
		Mode:                ModeCart,
		State:               StateConfirmed,
		Quantity:            len(record.Products),
		SpecialInstructions: record.SpecialInstructions,
		FirstName:           record.FirstName,
		PhoneNumber:         record.PhoneNumber,
		VehicleModel:        record.VehicleModel,
		VehicleColor:        record.VehicleColor,
		VehiclePlate:        record.VehiclePlate,
		DeliveryDate:        record.DeliveryDate,
		DeliveryTime:        record.DeliveryTime,
		PaymentMethod:       record.PaymentMethod,
		LocalOrderRef:       record.LocalOrderRef,
		RemoteOrderID:       record.RemoteOrderID,
	}
	s.putDraft(draft)
	s.startRefresh(c, record.RemoteOrderID)

	s.logger.Log(c, draft.UID, mylog.SeverityInfo, "Opened status view %s for order %s", draft.UID, record.RemoteOrderID)

	return draft, nil
}

func (s *service) Get(c context.Context, draftUID string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.lockedEntry(draftUID)
	if entry == nil {
		return Draft{}, myerrors.NewNotFoundError(fmt.Errorf("checkout %s not found", draftUID))
	}
	return entry.draft, nil
}

// Next applies the posted values for the current step and advances when its
// precondition holds. In add-to-cart mode completing the first step merges
// the product into the cart and terminates the wizard: done is true and the
// draft is gone.
func (s *service) Next(c context.Context, draftUID string, values url.Values) (draft Draft, done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.lockedEntry(draftUID)
	if entry == nil {
		return Draft{}, false, myerrors.NewNotFoundError(fmt.Errorf("checkout %s not found", draftUID))
	}
	if entry.submitting {
		return entry.draft, false, myerrors.NewInvalidInputError(fmt.Errorf("checkout %s is being submitted", draftUID))
	}
	current := &entry.draft

	err = current.applyForm(values)
	if err != nil {
		return *current, false, myerrors.NewInvalidInputError(err)
	}

	if current.Mode == ModeAddToCart && current.State == StateSelection {
		err = current.advanceGuard()
		if err != nil {
			current.LastError = err.Error()
			return *current, false, myerrors.NewInvalidInputError(err)
		}

		s.cartService.AddOrMerge(c, cart.Line{
			ProductID:           current.Product.ID,
			Name:                current.Product.Name,
			Image:               current.Product.Image,
			UnitPrice:           current.Product.Price,
			DiscountedUnitPrice: current.Product.DiscountedPrice,
			Quantity:            current.Quantity,
			SpecialInstructions: current.SpecialInstructions,
		})
		delete(s.drafts, draftUID)

		s.logger.Log(c, draftUID, mylog.SeverityInfo, "Checkout %s added %d x %s to cart", draftUID, current.Quantity, current.Product.Name)

		return *current, true, nil
	}

	err = current.Advance()
	if err != nil {
		current.LastError = err.Error()
		return *current, false, myerrors.NewInvalidInputError(err)
	}
	current.LastError = ""

	return *current, false, nil
}

func (s *service) Back(c context.Context, draftUID string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.lockedEntry(draftUID)
	if entry == nil {
		return Draft{}, myerrors.NewNotFoundError(fmt.Errorf("checkout %s not found", draftUID))
	}
	if entry.submitting {
		return entry.draft, myerrors.NewInvalidInputError(fmt.Errorf("checkout %s is being submitted", draftUID))
	}

	entry.draft.Back()
	entry.draft.LastError = ""

	return entry.draft, nil
}

// Confirm submits the order. Only legal on the review step. The draft is
// marked as submitting for the duration of the gateway call, so a concurrent
// confirm on the same draft is rejected instead of submitting twice. On
// failure the draft stays on review with the error recorded inline; on
// success the draft is confirmed, the cart is cleared when it was a cart
// checkout, and status auto-refresh begins.
func (s *service) Confirm(c context.Context, draftUID string) (Draft, error) {
	s.mu.Lock()
	entry := s.lockedEntry(draftUID)
	if entry == nil {
		s.mu.Unlock()
		return Draft{}, myerrors.NewNotFoundError(fmt.Errorf("checkout %s not found", draftUID))
	}
	if entry.submitting {
		snapshot := entry.draft
		s.mu.Unlock()
		return snapshot, myerrors.NewInvalidInputError(fmt.Errorf("checkout %s is already being submitted", draftUID))
	}
	if entry.draft.State != StateReview {
		snapshot := entry.draft
		s.mu.Unlock()
		return snapshot, myerrors.NewInvalidInputError(fmt.Errorf("checkout %s is not on the review step", draftUID))
	}
	entry.submitting = true
	snapshot := entry.draft
	s.mu.Unlock()

	result, err := s.gateway.Submit(c, s.composeOrderRequest(c, snapshot))

	s.mu.Lock()
	entry.submitting = false
	if err != nil {
		entry.draft.LastError = "Failed to submit order. Please try again."
		snapshot = entry.draft
		s.mu.Unlock()

		s.logger.Log(c, draftUID, mylog.SeverityWarn, "Checkout %s submission failed: %s", draftUID, err)

		return snapshot, err
	}
	entry.draft.ConfirmSubmission(result.LocalOrderRef, result.RemoteOrderID)
	snapshot = entry.draft
	s.mu.Unlock()

	if snapshot.Mode == ModeCart {
		s.cartService.Clear(c)
	}
	s.startRefresh(c, result.RemoteOrderID)

	s.logger.Log(c, draftUID, mylog.SeverityInfo, "Checkout %s confirmed as remote order %s", draftUID, result.RemoteOrderID)

	return snapshot, nil
}

// Refresh polls the order status once, on explicit customer request. A
// failed poll is recorded inline and leaves the last known status shown.
func (s *service) Refresh(c context.Context, draftUID string) (Draft, error) {
	s.mu.Lock()
	entry := s.lockedEntry(draftUID)
	if entry == nil {
		s.mu.Unlock()
		return Draft{}, myerrors.NewNotFoundError(fmt.Errorf("checkout %s not found", draftUID))
	}
	if entry.draft.State != StateConfirmed {
		snapshot := entry.draft
		s.mu.Unlock()
		return snapshot, myerrors.NewInvalidInputError(fmt.Errorf("checkout %s has no order to refresh", draftUID))
	}
	remoteOrderID := entry.draft.RemoteOrderID
	s.mu.Unlock()

	_, err := s.tracker.Poll(c, remoteOrderID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		entry.draft.LastError = "Could not fetch the order status. Please try again later."
		return entry.draft, nil
	}
	entry.draft.LastError = ""

	return entry.draft, nil
}

// Close tears the checkout down: the draft is discarded and, when the draft
// was the one being tracked, the auto-refresh loop is cancelled.
func (s *service) Close(c context.Context, draftUID string) {
	s.mu.Lock()
	entry := s.drafts[draftUID]
	delete(s.drafts, draftUID)
	if entry != nil {
		s.stopRefreshFor(entry.draft.RemoteOrderID)
	}
	s.mu.Unlock()

	s.logger.Log(c, draftUID, mylog.SeverityInfo, "Closed checkout %s", draftUID)
}

// LastStatus returns the last known status snapshot for the confirmed view.
func (s *service) LastStatus(c context.Context) (statustracker.OrderStatus, bool, error) {
	return s.tracker.LastKnown(c)
}

func (s *service) CurrentCart(c context.Context) cart.Cart {
	return s.cartService.Get(c)
}

func (s *service) composeOrderRequest(c context.Context, draft Draft) ordergateway.OrderRequest {
	var request ordergateway.OrderRequest
	if draft.Mode == ModeCart {
		request = ordergateway.NewOrderRequestFromCart(s.cartService.Get(c))
	} else {
		request = ordergateway.NewOrderRequestFromProduct(draft.Product, draft.Quantity, draft.SpecialInstructions)
	}

	request.FirstName = draft.FirstName
	request.PhoneNumber = draft.PhoneNumber
	request.DeliveryDate = draft.DeliveryDate
	request.DeliveryTime = draft.DeliveryTime
	request.PaymentMethod = draft.PaymentMethod
	request.VehicleModel = draft.VehicleModel
	request.VehicleColor = draft.VehicleColor
	request.VehiclePlate = draft.VehiclePlate

	return request
}

// startRefresh begins the 30-second status polling loop for the given order,
// first cancelling the running loop so no two loops ever run concurrently.
// The loop outlives the request that started it, hence the detached context.
func (s *service) startRefresh(c context.Context, remoteOrderID string) {
	detached := context.WithoutCancel(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshCancel != nil {
		s.refreshCancel()
	}
	s.refreshCancel = s.tracker.StartAutoRefresh(detached, remoteOrderID)
	s.refreshOrderID = remoteOrderID
}

// stopRefreshFor cancels the running loop when it belongs to the given
// order. Caller must hold the mutex.
func (s *service) stopRefreshFor(remoteOrderID string) {
	if remoteOrderID == "" || remoteOrderID != s.refreshOrderID {
		return
	}
	if s.refreshCancel != nil {
		s.refreshCancel()
	}
	s.refreshCancel = nil
	s.refreshOrderID = ""
}

func (s *service) putDraft(draft Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nower.Now()
	s.expireStale(now)
	s.drafts[draft.UID] = &draftEntry{
		draft:      draft,
		lastActive: now,
	}
}

// lockedEntry returns the live entry for the uid, refreshing its activity
// timestamp, or nil when it does not exist or has gone stale. Caller must
// hold the mutex.
func (s *service) lockedEntry(draftUID string) *draftEntry {
	entry := s.drafts[draftUID]
	if entry == nil {
		return nil
	}

	now := s.nower.Now()
	if !entry.submitting && now.Sub(entry.lastActive) > draftTTL {
		delete(s.drafts, draftUID)
		s.stopRefreshFor(entry.draft.RemoteOrderID)
		return nil
	}
	entry.lastActive = now

	return entry
}

// expireStale sweeps abandoned drafts. Caller must hold the mutex.
func (s *service) expireStale(now time.Time) {
	for uid, entry := range s.drafts {
		if entry.submitting || now.Sub(entry.lastActive) <= draftTTL {
			continue
		}
		delete(s.drafts, uid)
		s.stopRefreshFor(entry.draft.RemoteOrderID)
	}
}
