package statustracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/noodly/storefront/lib/myerrors"
	"github.com/noodly/storefront/lib/mylog"
	"github.com/noodly/storefront/lib/mypublisher"
	"github.com/noodly/storefront/lib/myretry"
	"github.com/noodly/storefront/lib/mystore"
	"github.com/noodly/storefront/lib/mytime"
	"github.com/noodly/storefront/services/orderevents"
	"github.com/noodly/storefront/services/shopapi"
)

const (
	lastStatusKey = "last"
)

// Timing holds the polling contract: a bounded budget per attempt, a fixed
// number of extra attempts on transport failures, and the steady-state
// auto-refresh cadence.
type Timing struct {
	PollTimeout     time.Duration
	RetryDelay      time.Duration
	MaxAttempts     int
	RefreshInterval time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		PollTimeout:     10 * time.Second,
		RetryDelay:      2 * time.Second,
		MaxAttempts:     3,
		RefreshInterval: 30 * time.Second,
	}
}

type service struct {
	cfg         shopapi.Config
	timing      Timing
	caller      shopapi.Caller
	statusStore mystore.Store[OrderStatus]
	publisher   mypublisher.Publisher
	nower       mytime.Nower
	logger      mylog.Logger

	mu            sync.Mutex
	latestOrderID string
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cfg shopapi.Config, timing Timing, caller shopapi.Caller, statusStore mystore.Store[OrderStatus], publisher mypublisher.Publisher, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		cfg:         cfg,
		timing:      timing,
		caller:      caller,
		statusStore: statusStore,
		publisher:   publisher,
		nower:       nower,
		logger:      logger,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	return nil
}

// Poll fetches the current status of the given remote order. Transport
// failures are retried; an explicit failure answer from the api is not.
// On success the snapshot is persisted so a restart still shows the last
// known status; on failure the previously stored snapshot stays untouched.
func (s *service) Poll(c context.Context, remoteOrderID string) (OrderStatus, error) {
	s.mu.Lock()
	s.latestOrderID = remoteOrderID
	s.mu.Unlock()

	s.logger.Log(c, remoteOrderID, mylog.SeverityInfo, "Poll status of order %s", remoteOrderID)

	var resp shopapi.Response

	policy := myretry.Policy{
		MaxAttempts: s.timing.MaxAttempts,
		Delay:       s.timing.RetryDelay,
		IsRetryable: shopapi.IsTransportError,
	}
	err := policy.Do(c, func(c context.Context) error {
		attemptCtx, cancel := context.WithTimeout(c, s.timing.PollTimeout)
		defer cancel()

		var callErr error
		resp, callErr = s.caller.Call(attemptCtx, s.cfg.NewLastStatusRequest(remoteOrderID))
		if callErr != nil {
			s.logger.Log(c, remoteOrderID, mylog.SeverityWarn, "Status poll attempt failed: %s", callErr)
			return callErr
		}

		if resp.IsExplicitFailure() {
			return myerrors.NewUnavailableError(fmt.Errorf("status of order %s not available: %s", remoteOrderID, resp.ResponseText))
		}

		return nil
	})
	if err != nil {
		if shopapi.IsTransportError(err) {
			return OrderStatus{}, myerrors.NewUnavailableError(fmt.Errorf("error fetching status of order %s: %s", remoteOrderID, err))
		}
		return OrderStatus{}, err
	}

	status := s.statusFromResponse(remoteOrderID, resp)

	// The request may have been overtaken by a poll for a newer order:
	// never commit a stale response.
	s.mu.Lock()
	latest := s.latestOrderID
	s.mu.Unlock()
	if latest != remoteOrderID {
		s.logger.Log(c, remoteOrderID, mylog.SeverityWarn, "Discarding stale status response for order %s, latest is %s", remoteOrderID, latest)
		return status, nil
	}

	s.commit(c, status)

	return status, nil
}

func (s *service) statusFromResponse(remoteOrderID string, resp shopapi.Response) OrderStatus {
	status := OrderStatus{
		RemoteOrderID: remoteOrderID,
		RawResponse:   string(resp.Raw),
		PolledAt:      s.nower.Now(),
	}

	var stage wireStage
	err := resp.DataElement(0, &stage)
	if err == nil {
		status.StageCode = stage.Stage
		status.StageLabel = stage.label()
		status.CanCancel = stage.CanCancelOrder == "1"
	}

	if estimate, found := resp.CodeElement(2); found {
		status.DeliveryEstimate = estimate
	}

	return status
}

func (s *service) commit(c context.Context, status OrderStatus) {
	previous, found, err := s.statusStore.Get(c, lastStatusKey)
	if err != nil {
		s.logger.Log(c, status.RemoteOrderID, mylog.SeverityWarn, "Error reading previous status: %s", err)
	}

	err = s.statusStore.Put(c, lastStatusKey, status)
	if err != nil {
		s.logger.Log(c, status.RemoteOrderID, mylog.SeverityWarn, "Error persisting status: %s", err)
	}

	if !found || previous.StageCode != status.StageCode {
		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderStatusChanged{
			RemoteOrderID: status.RemoteOrderID,
			StageCode:     status.StageCode,
			StageLabel:    status.StageLabel,
		})
		if err != nil {
			s.logger.Log(c, status.RemoteOrderID, mylog.SeverityWarn, "Error publishing status-changed event: %s", err)
		}
	}
}

// LastKnown returns the persisted status snapshot, if any.
func (s *service) LastKnown(c context.Context) (OrderStatus, bool, error) {
	return s.statusStore.Get(c, lastStatusKey)
}

// StartAutoRefresh polls the order on the configured interval until the
// returned cancel func is called. Callers must cancel on teardown; starting
// a new loop implies the previous one has been cancelled.
func (s *service) StartAutoRefresh(c context.Context, remoteOrderID string) func() {
	ctx, cancel := context.WithCancel(c)

	go func() {
		ticker := time.NewTicker(s.timing.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, err := s.Poll(ctx, remoteOrderID)
				if err != nil {
					s.logger.Log(ctx, remoteOrderID, mylog.SeverityWarn, "Auto-refresh poll failed: %s", err)
				}
			}
		}
	}()

	return cancel
}
