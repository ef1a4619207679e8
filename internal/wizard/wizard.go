package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	create "github.com/m04kA/ATL-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// Двухшаговый мастер записи: сначала выбор услуг, затем выбор даты, слота
// и времени. Session - чистое состояние без ввода-вывода; все переходы
// детерминированы и валидируют себя сами. Отправка собранного запроса
// происходит через Submit: ошибка создания записи из-за заполнившегося
// слота не роняет мастер, а возвращает его на шаг выбора времени.

// State шаг мастера записи
type State string

const (
	// StateSelectService шаг выбора услуг визита
	StateSelectService State = "SELECT_SERVICE"
	// StateSelectTime шаг выбора даты, слота и времени
	StateSelectTime State = "SELECT_TIME"
)

var (
	// ErrWrongState операция недоступна на текущем шаге
	ErrWrongState = errors.New("wizard: operation is not allowed in current state")

	// ErrNoPrimaryType попытка перейти к выбору времени без основной услуги
	ErrNoPrimaryType = errors.New("wizard: primary type is not chosen")

	// ErrInvalidType услуга не прошла доменную валидацию
	ErrInvalidType = errors.New("wizard: invalid appointment type")

	// ErrNoDateSelected попытка собрать запрос без выбранной даты
	ErrNoDateSelected = errors.New("wizard: date is not selected")

	// ErrDateOutOfRange дата вне окна записи
	ErrDateOutOfRange = errors.New("wizard: date is outside the booking window")

	// ErrNoTimeSelected попытка собрать запрос без выбранного времени
	ErrNoTimeSelected = errors.New("wizard: slot and time are not selected")
)

// AppointmentCreator создает запись из собранного мастером запроса
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create.Request) (*create.Response, error)
}

// Session состояние мастера записи
type Session struct {
	State State

	PrimaryType    domain.AppointmentType
	SecondaryTypes []domain.AppointmentType

	Date          time.Time
	SlotID        int64
	ScheduledTime types.TimeString

	OrderID *int64
	Notes   *string

	horizonDays int
	now         func() time.Time
}

// New создает сессию на шаге выбора услуг
// horizonDays - насколько дней вперед клиенту разрешено выбирать дату
func New(horizonDays int) *Session {
	return &Session{
		State:       StateSelectService,
		horizonDays: horizonDays,
		now:         time.Now,
	}
}

// ChoosePrimary выбирает основную услугу
// Смена основной услуги убирает ее из дополнительных и сбрасывает выбранное
// время: длительность визита могла измениться
func (s *Session) ChoosePrimary(t domain.AppointmentType) error {
	if s.State != StateSelectService {
		return fmt.Errorf("%w: ChoosePrimary in %s", ErrWrongState, s.State)
	}
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t)
	}

	s.PrimaryType = t
	filtered := s.SecondaryTypes[:0]
	for _, sec := range s.SecondaryTypes {
		if sec != t {
			filtered = append(filtered, sec)
		}
	}
	s.SecondaryTypes = filtered
	s.clearTimeSelection()
	return nil
}

// ToggleSecondary добавляет или убирает дополнительную услугу
func (s *Session) ToggleSecondary(t domain.AppointmentType) error {
	if s.State != StateSelectService {
		return fmt.Errorf("%w: ToggleSecondary in %s", ErrWrongState, s.State)
	}
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	if t == s.PrimaryType {
		return fmt.Errorf("%w: %q is already the primary type", ErrInvalidType, t)
	}

	for i, sec := range s.SecondaryTypes {
		if sec == t {
			s.SecondaryTypes = append(s.SecondaryTypes[:i], s.SecondaryTypes[i+1:]...)
			s.clearTimeSelection()
			return nil
		}
	}
	s.SecondaryTypes = append(s.SecondaryTypes, t)
	s.clearTimeSelection()
	return nil
}

// Proceed переходит к выбору времени
func (s *Session) Proceed() error {
	if s.State != StateSelectService {
		return fmt.Errorf("%w: Proceed in %s", ErrWrongState, s.State)
	}
	if s.PrimaryType == "" {
		return ErrNoPrimaryType
	}
	s.State = StateSelectTime
	return nil
}

// Back возвращает к выбору услуг, сбрасывая дату и выбранное время
func (s *Session) Back() error {
	if s.State != StateSelectTime {
		return fmt.Errorf("%w: Back in %s", ErrWrongState, s.State)
	}
	s.clearTimeSelection()
	s.Date = time.Time{}
	s.State = StateSelectService
	return nil
}

// SelectDate выбирает дату визита
// Дата должна попадать в окно записи: от сегодняшнего дня до horizonDays
// вперед. Смена даты сбрасывает выбранные слот и время
func (s *Session) SelectDate(date time.Time) error {
	if s.State != StateSelectTime {
		return fmt.Errorf("%w: SelectDate in %s", ErrWrongState, s.State)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrDateOutOfRange, day.Format(domain.DateFormat))
	}
	if day.After(today.AddDate(0, 0, s.horizonDays)) {
		return fmt.Errorf("%w: %s is more than %d days ahead",
			ErrDateOutOfRange, day.Format(domain.DateFormat), s.horizonDays)
	}

	s.Date = day
	s.clearTimeSelection()
	return nil
}

// PickTime выбирает слот и время начала
// Сессия не проверяет сетку и вместимость: это снимок клиентской стороны,
// авторитетная проверка произойдет при создании записи
func (s *Session) PickTime(slotID int64, t types.TimeString) error {
	if s.State != StateSelectTime {
		return fmt.Errorf("%w: PickTime in %s", ErrWrongState, s.State)
	}
	if slotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidType)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidType, err)
	}
	s.SlotID = slotID
	s.ScheduledTime = t
	return nil
}

// Duration длительность визита с текущим набором услуг
func (s *Session) Duration() int {
	if s.PrimaryType == "" {
		return 0
	}
	return domain.ComputeDuration(s.PrimaryType, s.SecondaryTypes)
}

// BuildRequest собирает запрос на создание записи из состояния сессии
// Требует полный выбор: дата, слот и время
func (s *Session) BuildRequest(customerID *int64) (*create.Request, error) {
	if s.State != StateSelectTime {
		return nil, fmt.Errorf("%w: BuildRequest in %s", ErrWrongState, s.State)
	}
	if s.Date.IsZero() {
		return nil, ErrNoDateSelected
	}
	if s.SlotID == 0 || s.ScheduledTime.IsZero() {
		return nil, ErrNoTimeSelected
	}

	return &create.Request{
		SlotID:         s.SlotID,
		PrimaryType:    s.PrimaryType,
		SecondaryTypes: append([]domain.AppointmentType(nil), s.SecondaryTypes...),
		ScheduledTime:  s.ScheduledTime,
		CustomerID:     customerID,
		OrderID:        s.OrderID,
		Notes:          s.Notes,
	}, nil
}

// Submit отправляет собранный запрос на создание записи
// Восстановимая ошибка (слот заполнился между выбором и отправкой и т.п.)
// возвращает мастер на выбор времени со сброшенными слотом и временем;
// дата и услуги сохраняются
func (s *Session) Submit(ctx context.Context, creator AppointmentCreator, customerID *int64) (*create.Response, error) {
	req, err := s.BuildRequest(customerID)
	if err != nil {
		return nil, err
	}

	resp, err := creator.Execute(ctx, req)
	if err != nil {
		s.HandleSubmitError(err)
		return nil, err
	}
	return resp, nil
}

// HandleSubmitError обрабатывает ошибку создания записи
// Восстановимые ошибки (слот заполнился, время невалидно, слот заблокирован)
// возвращают мастер на выбор времени со сброшенным выбором - клиент выбирает
// заново по свежей доступности. Возвращает true, если ошибка восстановима
func (s *Session) HandleSubmitError(err error) bool {
	if s.State != StateSelectTime {
		return false
	}

	switch {
	case errors.Is(err, create.ErrSlotFull),
		errors.Is(err, create.ErrSlotBlocked),
		errors.Is(err, create.ErrInvalidTime),
		errors.Is(err, create.ErrSlotNotFound):
		s.clearTimeSelection()
		return true
	}
	return false
}

func (s *Session) clearTimeSelection() {
	s.SlotID = 0
	s.ScheduledTime = ""
}
