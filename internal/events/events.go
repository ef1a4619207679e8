package events

import "time"

// Типы событий, публикуемых в очередь appointments.events
const (
	EventAppointmentCompleted = "appointment.completed"
	EventAppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent событие жизненного цикла записи
// ProposedOrderStatus заполняется координатором статусов заказов:
// это предложение, а не команда - OrderService сам решает, применять ли переход
type AppointmentEvent struct {
	Event               string    `json:"event"`
	AppointmentID       int64     `json:"appointmentId"`
	SlotID              int64     `json:"slotId"`
	CustomerID          *int64    `json:"customerId,omitempty"`
	OrderID             *int64    `json:"orderId,omitempty"`
	PrimaryType         string    `json:"primaryType"`
	Status              string    `json:"status"`
	ProposedOrderStatus *string   `json:"proposedOrderStatus,omitempty"`
	Reason              *string   `json:"reason,omitempty"`
	OccurredAt          time.Time `json:"occurredAt"`
}
