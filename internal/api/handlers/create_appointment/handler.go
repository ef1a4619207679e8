package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/ATL-AppointmentService/internal/api/handlers"
	"github.com/m04kA/ATL-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/ATL-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotFound       = "рабочий слот не найден"
	msgSlotBlocked        = "слот заблокирован для записи"
	msgSlotFull           = "все места слота заняты, выберите другое время"
	msgInvalidTimePoint   = "выбранное время недоступно в этом слоте"
	msgDateInPast         = "нельзя записаться на прошедшую дату"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgOrderNotFound      = "заказ не найден"
	msgInvalidInput       = "некорректные данные записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	isStaff := middleware.IsStaff(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(userID, isStaff)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createAppointment.ErrSlotBlocked):
			h.logger.Warn("POST /appointments - Slot blocked: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, createAppointment.ErrSlotFull):
			h.logger.Warn("POST /appointments - Slot full: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createAppointment.ErrInvalidTime):
			h.logger.Warn("POST /appointments - Invalid time: slot_id=%d, time=%s", req.SlotID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimePoint)

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - Date in past: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrOrderNotFound):
			h.logger.Warn("POST /appointments - Order not found: order_id=%v", req.OrderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: slot_id=%d, user_id=%d, error=%v",
				req.SlotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, slot_id=%d, user_id=%d",
		result.ID, result.SlotID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
