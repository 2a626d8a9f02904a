package events

// Routing keys published by this service.
const (
	RKOrderCreated = "order.created"
)

type OrderCreatedPayload struct {
	OrderID   uint           `json:"order_id"`
	Reference string         `json:"reference"`
	UserID    uint           `json:"user_id"`
	Total     string         `json:"total"`
	Lines     []OrderLineEvt `json:"lines"`
}

type OrderLineEvt struct {
	MenuItemID uint   `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
}
