package get_available_slots

import (
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	DateFrom time.Time // Начало диапазона дат (включительно)
	DateTo   time.Time // Конец диапазона дат (включительно)
	TailorID *int64    // Фильтр по мастеру (опционально)

	// Минимум свободных мест в слоте; 0 трактуется как 1
	MinCapacity int

	// Услуги планируемого визита. Если основная услуга указана, в ответ
	// попадают только времена, в которые визит такой длительности помещается
	PrimaryType    domain.AppointmentType
	SecondaryTypes []domain.AppointmentType
}

// SlotAvailability доступный слот с временами начала на сетке
type SlotAvailability struct {
	SlotID         int64              `json:"slotId"`
	TailorID       *int64             `json:"tailorId,omitempty"`
	Date           string             `json:"date"`
	StartTime      types.TimeString   `json:"startTime"`
	EndTime        types.TimeString   `json:"endTime"`
	Capacity       int                `json:"capacity"`
	Remaining      int                `json:"remaining"`
	AvailableTimes []types.TimeString `json:"availableTimes"`
}

// Response модель ответа с доступными слотами
type Response struct {
	Slots           []SlotAvailability `json:"slots"`
	DurationMinutes int                `json:"durationMinutes,omitempty"`
}
