package statustracker

import "time"

// OrderStatus is the last polled status snapshot for the most recent order.
type OrderStatus struct {
	RemoteOrderID    string
	StageCode        string
	StageLabel       string
	CanCancel        bool
	DeliveryEstimate string
	RawResponse      string `datastore:",noindex"`
	PolledAt         time.Time
}

type wireStage struct {
	Stage          string `json:"stage"`
	StageLang      string `json:"stage_lang"`
	CanCancelOrder string `json:"can_cancel_order"`
	OrderID        string `json:"order_id"`
}

func (w wireStage) label() string {
	if w.StageLang != "" {
		return w.StageLang
	}
	return w.Stage
}
