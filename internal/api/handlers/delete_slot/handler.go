package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ATL-AppointmentService/internal/api/handlers"
	"github.com/m04kA/ATL-AppointmentService/internal/service/slots"
)

const (
	msgInvalidSlotID  = "некорректный ID слота"
	msgSlotNotFound   = "рабочий слот не найден"
	msgSlotHasBookings = "слот содержит занятые места и не может быть удален"
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

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotIDStr := vars["slotId"]

	slotID, err := strconv.ParseInt(slotIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Delete(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrSlotHasBookings):
			h.logger.Warn("DELETE /slots/{id} - Slot has bookings: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotHasBookings)

		default:
			h.logger.Error("DELETE /slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot deleted: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
