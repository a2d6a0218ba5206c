package statustracker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/noodly/storefront/lib/mylog"
	"github.com/noodly/storefront/lib/mypublisher"
	"github.com/noodly/storefront/lib/mystore"
	"github.com/noodly/storefront/lib/mytime"
	"github.com/noodly/storefront/services/orderevents"
	"github.com/noodly/storefront/services/shopapi"
)

var (
	cfg = shopapi.Config{
		BaseURL:     "https://shopapi.example.com/app_request/get_data",
		ShopID:      "17",
		AccessToken: "secret",
		Language:    "english",
	}
)

func statusResponse(stage string, canCancel string) shopapi.Response {
	body := fmt.Sprintf(`{"response_code":["ord_159","159","Ready in 20 minutes"],"response_data":[{"stage":%q,"stage_lang":"Being prepared","can_cancel_order":%q,"order_id":"159"}]}`, stage, canCancel)
	var resp shopapi.Response
	_ = json.Unmarshal([]byte(body), &resp)
	resp.Raw = []byte(body)
	return resp
}

func TestStatusTracker(t *testing.T) {

	t.Run("Successful poll persists status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, storer, publisher := setup(t, ctrl)

		// given
		caller.EXPECT().Call(gomock.Any(), cfg.NewLastStatusRequest("159")).Return(statusResponse("preparing", "1"), nil)
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, orderevents.OrderStatusChanged{
			RemoteOrderID: "159",
			StageCode:     "preparing",
			StageLabel:    "Being prepared",
		}).Return(nil)

		// when
		status, err := svc.Poll(ctx, "159")

		// then
		assert.NoError(t, err)
		assert.Equal(t, "preparing", status.StageCode)
		assert.Equal(t, "Being prepared", status.StageLabel)
		assert.True(t, status.CanCancel)
		assert.Equal(t, "Ready in 20 minutes", status.DeliveryEstimate)

		stored, exists, _ := storer.Get(ctx, lastStatusKey)
		assert.True(t, exists)
		assert.Equal(t, "preparing", stored.StageCode)
	})

	t.Run("Two transport failures then success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, storer, publisher := setup(t, ctrl)

		// given
		transportErr := &shopapi.TransportError{Err: fmt.Errorf("connection reset")}
		gomock.InOrder(
			caller.EXPECT().Call(gomock.Any(), cfg.NewLastStatusRequest("159")).Return(shopapi.Response{}, transportErr),
			caller.EXPECT().Call(gomock.Any(), cfg.NewLastStatusRequest("159")).Return(shopapi.Response{}, transportErr),
			caller.EXPECT().Call(gomock.Any(), cfg.NewLastStatusRequest("159")).Return(statusResponse("preparing", "0"), nil),
		)
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil)

		// when
		status, err := svc.Poll(ctx, "159")

		// then
		assert.NoError(t, err)
		assert.Equal(t, "preparing", status.StageCode)
		assert.False(t, status.CanCancel)

		_, exists, _ := storer.Get(ctx, lastStatusKey)
		assert.True(t, exists)
	})

	t.Run("Explicit api failure is not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, storer, _ := setup(t, ctrl)

		// given: exactly one call
		var failure shopapi.Response
		_ = json.Unmarshal([]byte(`{"response_code":"2","response_text":"order not found"}`), &failure)
		caller.EXPECT().Call(gomock.Any(), cfg.NewLastStatusRequest("159")).Return(failure, nil).Times(1)

		// when
		_, err := svc.Poll(ctx, "159")

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "order not found")

		_, exists, _ := storer.Get(ctx, lastStatusKey)
		assert.False(t, exists)
	})

	t.Run("Exhausted retries keep last known status untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, storer, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, lastStatusKey, OrderStatus{RemoteOrderID: "159", StageCode: "preparing"})
		transportErr := &shopapi.TransportError{Err: fmt.Errorf("timeout")}
		caller.EXPECT().Call(gomock.Any(), cfg.NewLastStatusRequest("159")).Return(shopapi.Response{}, transportErr).Times(3)

		// when
		_, err := svc.Poll(ctx, "159")

		// then
		assert.Error(t, err)
		stored, exists, _ := storer.Get(ctx, lastStatusKey)
		assert.True(t, exists)
		assert.Equal(t, "preparing", stored.StageCode)
	})

	t.Run("No status-changed event when stage is unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, storer, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, lastStatusKey, OrderStatus{RemoteOrderID: "159", StageCode: "preparing"})
		caller.EXPECT().Call(gomock.Any(), cfg.NewLastStatusRequest("159")).Return(statusResponse("preparing", "1"), nil)

		// when
		_, err := svc.Poll(ctx, "159")

		// then: no Publish expectation means any publish would fail the test
		assert.NoError(t, err)
	})

	t.Run("Stale response for superseded order id is not committed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, storer, publisher := setup(t, ctrl)

		// given: the poll for order 100 answers only after 159 became the
		// latest requested order
		caller.EXPECT().Call(gomock.Any(), cfg.NewLastStatusRequest("100")).DoAndReturn(
			func(c context.Context, request any) (shopapi.Response, error) {
				svc.mu.Lock()
				svc.latestOrderID = "159"
				svc.mu.Unlock()
				return statusResponse("ready", "0"), nil
			})

		// when
		status, err := svc.Poll(ctx, "100")

		// then: the caller still gets the answer, the store does not
		assert.NoError(t, err)
		assert.Equal(t, "ready", status.StageCode)
		_, exists, _ := storer.Get(ctx, lastStatusKey)
		assert.False(t, exists)
		_ = publisher
	})

	t.Run("Auto-refresh polls until cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, svc, caller, _, publisher := setup(t, ctrl)
		svc.timing.RefreshInterval = 5 * time.Millisecond

		polled := make(chan struct{}, 10)
		caller.EXPECT().Call(gomock.Any(), cfg.NewLastStatusRequest("159")).DoAndReturn(
			func(c context.Context, request any) (shopapi.Response, error) {
				polled <- struct{}{}
				return statusResponse("preparing", "0"), nil
			}).MinTimes(1)
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil).AnyTimes()

		// when
		cancel := svc.StartAutoRefresh(ctx, "159")

		// then
		select {
		case <-polled:
		case <-time.After(time.Second):
			t.Fatal("expected at least one auto-refresh poll")
		}
		cancel()
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *service, *shopapi.MockCaller, mystore.Store[OrderStatus], *mypublisher.MockPublisher) {
	c := context.TODO()

	caller := shopapi.NewMockCaller(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	storer, _, err := mystore.NewInMemoryStore[OrderStatus](c)
	assert.NoError(t, err)

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	timing := DefaultTiming()
	timing.RetryDelay = time.Millisecond

	svc := NewService(cfg, timing, caller, storer, publisher, nower, mylog.New("statustracker"))

	return c, svc, caller, storer, publisher
}
