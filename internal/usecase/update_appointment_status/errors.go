package update_appointment_status

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment_status: appointment not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статусов
	ErrInvalidTransition = errors.New("update_appointment_status: invalid status transition")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на операцию
	ErrAccessDenied = errors.New("update_appointment_status: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment_status: internal error")
)
