package orderservice

// Order модель заказа из OrderService
// Сервис записей использует только идентификатор и статус
type Order struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customer_id"`
	Status     string  `json:"status"`
	TailorID   *int64  `json:"tailor_id,omitempty"`
	Title      *string `json:"title,omitempty"`
}

// ErrorResponse модель ошибки от OrderService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
