package domain

// OrderStatus represents the lifecycle stage of a tailoring order.
// Orders are owned by OrderService; this service only consumes the enum
// and proposes transitions driven by appointment milestones.
type OrderStatus string

const (
	OrderDraft           OrderStatus = "DRAFT"
	OrderWaitingForQuote OrderStatus = "WAITING_FOR_QUOTE"
	OrderConfirmed       OrderStatus = "CONFIRMED"
	OrderInProgress      OrderStatus = "IN_PROGRESS"
	OrderFitting         OrderStatus = "FITTING"
	OrderCompleted       OrderStatus = "COMPLETED"
	OrderCancelled       OrderStatus = "CANCELLED"
)

// IsTerminal returns true for order statuses that admit no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// orderTransitions справочная машина состояний заказа
// Единственный обратный переход - FITTING → IN_PROGRESS (доработка после примерки)
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderDraft:           {OrderWaitingForQuote, OrderCancelled},
	OrderWaitingForQuote: {OrderConfirmed, OrderCancelled},
	OrderConfirmed:       {OrderInProgress, OrderCancelled},
	OrderInProgress:      {OrderFitting, OrderCancelled},
	OrderFitting:         {OrderCompleted, OrderInProgress, OrderCancelled},
	OrderCompleted:       {},
	OrderCancelled:       {},
}

// CanTransitionTo reports whether the order status change is legal per the
// reference state machine. The authoritative check lives in OrderService;
// this copy only guards against emitting obviously invalid proposals.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
