package leavetype

import (
	"errors"

	leavetypeerrors "go-hrms/internal/leavetype/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates low-level postgres failures into domain
// errors. The unique violation backstops the in-transaction name lookup
// against concurrent writers.
func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_types_name" {
			return leavetypeerrors.ErrLeaveTypeNameExists
		}
	}
	return err
}
