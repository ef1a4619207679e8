package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/ATL-AppointmentService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "userRole"

	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"

	// RoleStaff роль персонала ателье (мастера и администраторы)
	RoleStaff = "staff"
	// RoleCustomer роль клиента
	RoleCustomer = "customer"
)

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный ID пользователя"
	msgStaffOnly     = "операция доступна только персоналу"
)

// Auth извлекает пользователя из заголовков X-User-ID и X-User-Role
// Аутентификацию выполняет API gateway; сервис доверяет его заголовкам.
// Пустая или неизвестная роль трактуется как customer
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(headerUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := r.Header.Get(headerRole)
		if role != RoleStaff {
			role = RoleCustomer
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffOnly пускает дальше только запросы с ролью staff
// Должен стоять после Auth
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			handlers.RespondForbidden(w, msgStaffOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsStaff сообщает, принадлежит ли запрос персоналу
func IsStaff(ctx context.Context) bool {
	role, ok := ctx.Value(roleKey).(string)
	return ok && role == RoleStaff
}
