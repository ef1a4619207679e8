package list_slot_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ATL-AppointmentService/internal/api/handlers"
	"github.com/m04kA/ATL-AppointmentService/internal/api/middleware"
	"github.com/m04kA/ATL-AppointmentService/internal/service/appointments"
	"github.com/m04kA/ATL-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "рабочий слот не найден"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/{slotId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotIDStr := vars["slotId"]

	slotID, err := strconv.ParseInt(slotIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /slots/{id}/appointments - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /slots/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	caller := models.Caller{UserID: userID, IsStaff: middleware.IsStaff(r.Context())}

	result, err := h.service.ListBySlot(r.Context(), slotID, caller)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{id}/appointments - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /slots/{id}/appointments - Access denied: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /slots/{id}/appointments - Failed to list appointments: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{id}/appointments - Retrieved %d appointments: slot_id=%d, user_id=%d",
		result.Total, slotID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
