package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/internal/infra/cache/slotcache"
)

// Диапазон дат одного запроса ограничен, чтобы не собирать сетку
// по всему расписанию разом
const maxRangeDays = 31

// UseCase use case выдачи доступных слотов
// Ответ - устаревающий снимок: авторитетная проверка вместимости происходит
// при создании записи. Снимки кешируются и инвалидируются любой записью,
// затрагивающей слоты
type UseCase struct {
	slotRepo     SlotRepository
	cache        SlotCache
	timeProvider TimeProvider
	logger       Logger

	gridInterval int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, cache SlotCache, logger Logger, gridInterval int) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		gridInterval: gridInterval,
	}
}

// Execute выполняет use case выдачи доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Прошедшие даты в выдачу не попадают
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateFrom := req.DateFrom
	if dateFrom.Before(today) {
		dateFrom = today
	}

	duration := 0
	if req.PrimaryType != "" {
		duration = domain.ComputeDuration(req.PrimaryType, req.SecondaryTypes)
	}

	minCapacity := req.MinCapacity
	if minCapacity < 1 {
		minCapacity = 1
	}

	// 3. Пробуем кеш
	cacheKey := buildCacheKey(req, dateFrom, duration, minCapacity)
	if data, ok := uc.cache.Get(ctx, cacheKey); ok {
		var resp Response
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, nil
		}
		uc.logger.Warn("GetAvailableSlots: cached payload is corrupted, ignoring")
	}

	// 4. Берем только слоты, в которых хватает свободных мест
	slots, err := uc.slotRepo.ListWithFilter(ctx, domain.SlotFilter{
		DateFrom:     dateFrom,
		DateTo:       req.DateTo,
		TailorID:     req.TailorID,
		MinCapacity:  minCapacity,
		OnlyBookable: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 5. Для каждого слота строим точки сетки, в которые помещается визит
	resp := &Response{
		Slots:           make([]SlotAvailability, 0, len(slots)),
		DurationMinutes: duration,
	}
	for _, slot := range slots {
		times := domain.TimeGrid(slot.StartTime, slot.EndTime, uc.gridInterval)
		if duration > 0 {
			fitting := times[:0]
			for _, t := range times {
				if slot.Contains(t, duration) {
					fitting = append(fitting, t)
				}
			}
			times = fitting
		}
		if len(times) == 0 {
			continue
		}

		resp.Slots = append(resp.Slots, SlotAvailability{
			SlotID:         slot.ID,
			TailorID:       slot.TailorID,
			Date:           slot.Date.Format(domain.DateFormat),
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			Capacity:       slot.Capacity,
			Remaining:      slot.Remaining(),
			AvailableTimes: times,
		})
	}

	// 6. Кешируем снимок
	if data, err := json.Marshal(resp); err == nil {
		uc.cache.Set(ctx, cacheKey, data)
	}

	uc.logger.Info("GetAvailableSlots: %d slots in range %s..%s",
		len(resp.Slots), dateFrom.Format(domain.DateFormat), req.DateTo.Format(domain.DateFormat))

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DateFrom.IsZero() || req.DateTo.IsZero() {
		return fmt.Errorf("%w: dateFrom and dateTo are required", ErrInvalidInput)
	}
	if req.DateTo.Before(req.DateFrom) {
		return fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidDateRange)
	}
	if req.DateTo.Sub(req.DateFrom).Hours() > maxRangeDays*24 {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidDateRange, maxRangeDays)
	}

	if req.TailorID != nil && *req.TailorID <= 0 {
		return fmt.Errorf("%w: tailorID must be positive", ErrInvalidInput)
	}

	if req.MinCapacity < 0 {
		return fmt.Errorf("%w: minCapacity must not be negative", ErrInvalidInput)
	}

	if req.PrimaryType != "" && !domain.ValidateTypes(req.PrimaryType, req.SecondaryTypes) {
		return fmt.Errorf("%w: invalid primary/secondary type combination", ErrInvalidInput)
	}
	if req.PrimaryType == "" && len(req.SecondaryTypes) > 0 {
		return fmt.Errorf("%w: secondary types require a primary type", ErrInvalidInput)
	}

	return nil
}

// buildCacheKey строит ключ кеша из нормализованных параметров запроса
func buildCacheKey(req *Request, dateFrom time.Time, duration, minCapacity int) string {
	tailor := ""
	if req.TailorID != nil {
		tailor = strconv.FormatInt(*req.TailorID, 10)
	}
	return slotcache.BuildKey(
		dateFrom.Format(domain.DateFormat),
		req.DateTo.Format(domain.DateFormat),
		tailor,
		strconv.Itoa(duration),
		strconv.Itoa(minCapacity),
	)
}
