package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/api/handlers"
	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/ATL-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgMissingDateFrom  = "параметр dateFrom обязателен"
	msgMissingDateTo    = "параметр dateTo обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "некорректный диапазон дат"
	msgInvalidTailorID    = "некорректный ID мастера"
	msgInvalidMinCapacity = "некорректное значение minCapacity"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: dateFrom, dateTo (required, YYYY-MM-DD), tailorId, type,
// secondaryTypes (repeatable), minCapacity - optional
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateFromStr := query.Get("dateFrom")
	if dateFromStr == "" {
		h.logger.Warn("GET /available-slots - Missing dateFrom")
		handlers.RespondBadRequest(w, msgMissingDateFrom)
		return
	}
	dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid dateFrom: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	dateToStr := query.Get("dateTo")
	if dateToStr == "" {
		h.logger.Warn("GET /available-slots - Missing dateTo")
		handlers.RespondBadRequest(w, msgMissingDateTo)
		return
	}
	dateTo, err := time.Parse(domain.DateFormat, dateToStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid dateTo: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailableSlots.Request{
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}

	if tailorIDStr := query.Get("tailorId"); tailorIDStr != "" {
		tailorID, err := strconv.ParseInt(tailorIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /available-slots - Invalid tailor ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTailorID)
			return
		}
		req.TailorID = &tailorID
	}

	if minCapacityStr := query.Get("minCapacity"); minCapacityStr != "" {
		minCapacity, err := strconv.Atoi(minCapacityStr)
		if err != nil || minCapacity < 0 {
			h.logger.Warn("GET /available-slots - Invalid minCapacity: %q", minCapacityStr)
			handlers.RespondBadRequest(w, msgInvalidMinCapacity)
			return
		}
		req.MinCapacity = minCapacity
	}

	if typeStr := query.Get("type"); typeStr != "" {
		req.PrimaryType = domain.AppointmentType(typeStr)
		for _, s := range query["secondaryTypes"] {
			req.SecondaryTypes = append(req.SecondaryTypes, domain.AppointmentType(s))
		}
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDateRange):
			h.logger.Warn("GET /available-slots - Invalid date range: from=%s, to=%s", dateFromStr, dateToStr)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Retrieved %d slots: from=%s, to=%s",
		len(result.Slots), dateFromStr, dateToStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
