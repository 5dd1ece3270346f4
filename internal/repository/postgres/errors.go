package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// hasPgCode проверяет SQLSTATE ошибки Postgres для pgconn и lib/pq драйверов
func hasPgCode(err error, code string) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == code {
		return true
	}
	return false
}

// isUniqueViolation проверяет Postgres unique violation (23505)
func isUniqueViolation(err error) bool {
	return hasPgCode(err, uniqueViolationCode)
}

// isForeignKeyViolation проверяет нарушение внешнего ключа (23503),
// например удаление вопроса, на который ссылаются ответы игр
func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, foreignKeyViolationCode)
}

// mapError приводит ошибки gorm/драйвера к ошибкам приложения
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case isUniqueViolation(err), isForeignKeyViolation(err):
		return apperrors.ErrConflict
	default:
		return err
	}
}
