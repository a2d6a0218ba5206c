package orderevents

const (
	TopicName = "orders"
)

type OrderSubmitted struct {
	LocalOrderRef string
	RemoteOrderID string
	TotalAmount   float64
	ProductCount  int
	PhoneNumber   string
}

func (e OrderSubmitted) GetEventTypeName() string {
	return "orders.submitted"
}

func (e OrderSubmitted) GetAggregateName() string {
	return e.RemoteOrderID
}

type OrderStatusChanged struct {
	RemoteOrderID string
	StageCode     string
	StageLabel    string
}

func (e OrderStatusChanged) GetEventTypeName() string {
	return "orders.statusChanged"
}

func (e OrderStatusChanged) GetAggregateName() string {
	return e.RemoteOrderID
}
