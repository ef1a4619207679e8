package block_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ATL-AppointmentService/internal/api/handlers"
	appointmentModels "github.com/m04kA/ATL-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/ATL-AppointmentService/internal/service/slots"
)

const (
	msgInvalidSlotID         = "некорректный ID слота"
	msgSlotNotFound          = "рабочий слот не найден"
	msgHasActiveAppointments = "слот содержит активные записи, сначала отмените или завершите их"
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

// conflictResponse тело ответа 409 со списком затронутых записей
type conflictResponse struct {
	Error        string                                   `json:"error"`
	Appointments []*appointmentModels.AppointmentResponse `json:"appointments"`
}

// Handle POST /api/v1/slots/{slotId}/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotIDStr := vars["slotId"]

	slotID, err := strconv.ParseInt(slotIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/block - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	affected, err := h.service.Block(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/block - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrSlotHasActiveAppointments):
			h.logger.Warn("POST /slots/{id}/block - Slot has %d active appointments: slot_id=%d",
				len(affected), slotID)
			handlers.RespondJSON(w, http.StatusConflict, conflictResponse{
				Error:        msgHasActiveAppointments,
				Appointments: appointmentModels.FromDomainAppointmentList(affected).Appointments,
			})

		default:
			h.logger.Error("POST /slots/{id}/block - Failed to block slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/block - Slot blocked: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
