package postgres

import (
	"errors"

	"driveshare-backend/internal/domain"

	"github.com/lib/pq"
)

// wrapError translates driver errors into the domain taxonomy. Constraint
// and serialization failures are conflicts the caller can resubmit;
// everything else is a storage failure.
func wrapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001": // serialization_failure
			return domain.NewConflictError("concurrent update, please retry")
		case "23505", "23P01": // unique_violation, exclusion_violation
			return domain.NewConflictError("record conflicts with existing data")
		case "23503": // foreign_key_violation (bookings FK is RESTRICT)
			return domain.NewConflictError("record is referenced by existing bookings")
		}
	}
	return domain.NewStorageError(err)
}
