package domain

// Default configuration values
const (
	DefaultGridIntervalMinutes = 30
	DefaultBookingHorizonDays  = 14
)

// Business validation constants
const (
	MinSlotCapacity             = 1
	MaxSlotCapacity             = 50
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы записей, удерживающих место в слоте и ожидающих
// завершения. Используется при проверке конфликтов блокировки слота.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// CapacityHoldingStatuses статусы записей, занимающих место в слоте
// (все, кроме отмененных). Используется в инварианте booked_count.
var CapacityHoldingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusDone,
}
