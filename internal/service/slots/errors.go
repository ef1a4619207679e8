package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("working slot not found")

	// ErrSlotHasActiveAppointments возвращается при попытке заблокировать слот
	// с неотмененными записями. Блокировка не должна молча осиротить брони:
	// вызывающему возвращается список затронутых записей для ручного разбора.
	ErrSlotHasActiveAppointments = errors.New("slot has active appointments")

	// ErrSlotHasBookings возвращается при попытке удалить слот с занятыми местами
	ErrSlotHasBookings = errors.New("slot has booked appointments")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
