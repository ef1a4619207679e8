package domain

// Канонические таблицы статус → человекочитаемая подпись.
// Единственный источник подписей для всех потребителей, чтобы исключить
// расхождения между экранами.

var appointmentStatusLabels = map[AppointmentStatus]string{
	StatusPending:   "ожидает подтверждения",
	StatusConfirmed: "подтверждена",
	StatusDone:      "завершена",
	StatusCancelled: "отменена",
}

var appointmentTypeLabels = map[AppointmentType]string{
	TypeConsult: "консультация",
	TypeMeasure: "снятие мерок",
	TypeFitting: "примерка",
	TypePickup:  "выдача заказа",
}

var orderStatusLabels = map[OrderStatus]string{
	OrderDraft:           "черновик",
	OrderWaitingForQuote: "ожидает расчета",
	OrderConfirmed:       "подтвержден",
	OrderInProgress:      "в работе",
	OrderFitting:         "примерка",
	OrderCompleted:       "выполнен",
	OrderCancelled:       "отменен",
}

// Label returns the human-readable label for an appointment status.
func (s AppointmentStatus) Label() string {
	if label, ok := appointmentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Label returns the human-readable label for an appointment type.
func (t AppointmentType) Label() string {
	if label, ok := appointmentTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Label returns the human-readable label for an order status.
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}
