package domain

import "github.com/m04kA/ATL-AppointmentService/pkg/types"

// TimeGrid генерирует точки бронирования внутри границ слота
// Начинает с start, шагает с интервалом intervalMinutes, останавливается
// строго раньше end. Чистая функция: один и тот же вход всегда дает один
// и тот же результат, поэтому выдача слотов и серверная валидация
// выбранного времени используют одно и то же правило.
//
// TimeGrid("08:00", "09:00", 30) → ["08:00", "08:30"]
func TimeGrid(start, end types.TimeString, intervalMinutes int) []types.TimeString {
	if intervalMinutes <= 0 {
		return []types.TimeString{}
	}

	points := make([]types.TimeString, 0)
	current := start

	for current.IsBefore(end) {
		points = append(points, current)
		next, err := current.AddMinutes(intervalMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return points
}

// IsGridPoint reports whether t is one of the grid points of the slot.
func IsGridPoint(slot *WorkingSlot, t types.TimeString, intervalMinutes int) bool {
	for _, point := range TimeGrid(slot.StartTime, slot.EndTime, intervalMinutes) {
		if point == t {
			return true
		}
	}
	return false
}
