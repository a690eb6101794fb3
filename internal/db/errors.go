package db

import (
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/bartek5186/sahamit-tms/internal/validation"
)

var ErrUnknownTable = errors.New("unknown table")

// MySQL: kody błędów naruszenia ograniczeń
const (
	myErrBadNull         = 1048
	myErrDupEntry        = 1062
	myErrNoDefault       = 1364
	myErrRowIsReferenced = 1451
	myErrNoReferencedRow = 1452
)

// IsConstraintViolation rozpoznaje naruszenie NOT NULL / klucza / FK niezależnie od drivera.
// Sam błąd zwracamy wołającemu bez zmian, to tylko klasyfikacja do komunikatu.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	// PostgreSQL: klasa 23 (integrity constraint violation)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myErrBadNull, myErrDupEntry, myErrNoDefault, myErrRowIsReferenced, myErrNoReferencedRow:
			return true
		}
		return false
	}

	// SQLite (glebarez i mattn): "NOT NULL constraint failed: ...", "UNIQUE constraint failed: ..."
	return strings.Contains(strings.ToLower(err.Error()), "constraint failed")
}

// IsValidation: błąd walidacji rekordu wykryty przed wywołaniem bazy.
func IsValidation(err error) bool {
	var ve *validation.Errors
	return errors.As(err, &ve)
}
