package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/ATL-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий рабочих слотов
// Единственный модуль, изменяющий working_slots.booked_count
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var slotColumns = []string{
	"id",
	"tailor_id",
	"slot_date",
	"start_time",
	"end_time",
	"capacity",
	"booked_count",
	"status",
	"created_at",
	"updated_at",
}

// Create создает рабочий слот
func (r *Repository) Create(ctx context.Context, s *domain.WorkingSlot) (*domain.WorkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_slots").
		Columns("tailor_id", "slot_date", "start_time", "end_time", "capacity", "booked_count", "status").
		Values(s.TailorID, s.Date, s.StartTime, s.EndTime, s.Capacity, s.BookedCount, s.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает слот по ID
// Внутри транзакции блокирует строку (FOR UPDATE), чтобы сериализовать
// проверку и изменение booked_count между конкурентными бронированиями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WorkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("working_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSlotRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return s, nil
}

// ListWithFilter получает слоты за период с фильтрацией
// Сортировка: дата по возрастанию, затем время начала по возрастанию
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.WorkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("working_slots").
		Where(squirrel.GtOrEq{"slot_date": filter.DateFrom}).
		Where(squirrel.LtOrEq{"slot_date": filter.DateTo})

	if filter.TailorID != nil {
		// Слоты конкретного портного плюс слоты "любой портной"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"tailor_id": *filter.TailorID},
			squirrel.Eq{"tailor_id": nil},
		})
	}

	if filter.OnlyBookable {
		minCapacity := filter.MinCapacity
		if minCapacity < 1 {
			minCapacity = 1
		}
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"status": domain.SlotAvailable}).
			Where(fmt.Sprintf("booked_count + %d <= capacity", minCapacity))
	}

	selectBuilder = selectBuilder.OrderBy("slot_date ASC", "start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// UpdateStatus переключает статус слота (AVAILABLE / BLOCKED)
// Не затрагивает booked_count
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("working_slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// IncrementBooked занимает одно место в слоте
// Guard-условие booked_count < capacity гарантирует, что даже вне
// сериализуемой транзакции счетчик не превысит capacity
func (r *Repository) IncrementBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("working_slots").
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("booked_count < capacity")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		// Либо слот не существует, либо все места заняты
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrSlotFull
	}

	return nil
}

// DecrementBooked освобождает одно место в слоте (отмена записи)
func (r *Repository) DecrementBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("working_slots").
		Set("booked_count", squirrel.Expr("booked_count - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("booked_count > 0")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNothingBooked
	}

	return nil
}

// Delete удаляет слот
// Слот с занятыми местами удалить нельзя - сначала должны быть отменены записи
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_slots").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("booked_count = 0")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrSlotHasBookings
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlotRow(row rowScanner) (*domain.WorkingSlot, error) {
	var s domain.WorkingSlot
	var createdAt, updatedAt sql.NullTime
	var tailorID sql.NullInt64

	err := row.Scan(
		&s.ID,
		&tailorID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.BookedCount,
		&s.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tailorID.Valid {
		s.TailorID = &tailorID.Int64
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.WorkingSlot, error) {
	slots := make([]*domain.WorkingSlot, 0)

	for rows.Next() {
		s, err := scanSlotRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
