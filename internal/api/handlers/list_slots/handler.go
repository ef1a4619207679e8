package list_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/api/handlers"
	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/internal/service/slots"
	"github.com/m04kA/ATL-AppointmentService/internal/service/slots/models"
)

const (
	msgMissingDateFrom = "параметр dateFrom обязателен"
	msgMissingDateTo   = "параметр dateTo обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTailorID = "некорректный ID мастера"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: dateFrom, dateTo (required, YYYY-MM-DD), tailorId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateFromStr := query.Get("dateFrom")
	if dateFromStr == "" {
		h.logger.Warn("GET /slots - Missing dateFrom")
		handlers.RespondBadRequest(w, msgMissingDateFrom)
		return
	}
	dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid dateFrom: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	dateToStr := query.Get("dateTo")
	if dateToStr == "" {
		h.logger.Warn("GET /slots - Missing dateTo")
		handlers.RespondBadRequest(w, msgMissingDateTo)
		return
	}
	dateTo, err := time.Parse(domain.DateFormat, dateToStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid dateTo: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.ListSlotsRequest{
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}
	if tailorIDStr := query.Get("tailorId"); tailorIDStr != "" {
		tailorID, err := strconv.ParseInt(tailorIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid tailor ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTailorID)
			return
		}
		req.TailorID = &tailorID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /slots - Failed to list slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Retrieved %d slots: from=%s, to=%s", result.Total, dateFromStr, dateToStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
