package create_appointment

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_appointment: working slot not found")

	// ErrSlotBlocked возвращается при попытке записи в заблокированный слот
	ErrSlotBlocked = errors.New("create_appointment: slot is blocked")

	// ErrSlotFull возвращается, когда все места слота заняты
	// Восстановимо: клиенту предлагаются альтернативные слоты
	ErrSlotFull = errors.New("create_appointment: slot capacity exhausted")

	// ErrInvalidTime возвращается, когда выбранное время не лежит на сетке
	// слота или запись не помещается в его границы
	// Восстановимо: клиент выбирает другое время в том же слоте
	ErrInvalidTime = errors.New("create_appointment: invalid scheduled time")

	// ErrDateInPast возвращается при записи на прошедшую дату
	ErrDateInPast = errors.New("create_appointment: slot date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата слота выходит за горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_appointment: slot date is beyond the booking horizon")

	// ErrOrderNotFound возвращается, когда указанный заказ не существует
	ErrOrderNotFound = errors.New("create_appointment: order not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
