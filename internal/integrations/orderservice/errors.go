package orderservice

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("orderservice client: order not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("orderservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("orderservice client: invalid response")

	// ErrUnknownOutcome возвращается при сетевой ошибке или таймауте,
	// когда результат запроса на стороне сервиса неизвестен.
	// Вызывающий код не должен слепо повторять мутирующие запросы -
	// сначала нужно перечитать состояние.
	ErrUnknownOutcome = errors.New("orderservice client: unknown outcome, request may have been applied")
)
