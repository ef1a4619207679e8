package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда рабочий слот не найден
	ErrSlotNotFound = errors.New("slot.repository: working slot not found")

	// ErrSlotFull возвращается, когда все места слота заняты
	// (guard-условие booked_count < capacity не выполнено)
	ErrSlotFull = errors.New("slot.repository: slot capacity exhausted")

	// ErrNothingBooked возвращается при попытке освободить место
	// в слоте без занятых мест
	ErrNothingBooked = errors.New("slot.repository: booked count is already zero")

	// ErrSlotHasBookings возвращается при попытке удалить слот с занятыми местами
	ErrSlotHasBookings = errors.New("slot.repository: slot has booked appointments")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
