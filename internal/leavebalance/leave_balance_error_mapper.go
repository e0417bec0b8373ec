package leavebalance

import (
	"errors"

	leavebalanceerrors "go-hrms/internal/leavebalance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates postgres failures into domain errors. The
// unique violation on (user, type, year) is how a concurrent duplicate
// assignment surfaces; callers treat it as already assigned.
func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_balances_user_type_year" {
			return leavebalanceerrors.ErrAlreadyAssigned
		}
	}
	return err
}
