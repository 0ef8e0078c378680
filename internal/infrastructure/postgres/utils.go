package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlState extrae el código SQLSTATE de un error de pgx, o cadena vacía.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation reporta si el error es una violación de constraint único,
// para mapearla a error de clave natural duplicada.
func isUniqueViolation(err error) bool {
	return sqlState(err) == "23505" // unique_violation
}
