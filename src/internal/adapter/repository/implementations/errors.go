package implementations

import (
	"context"
	stderrors "errors"

	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/lib/pq"
)

// classify names the postgres condition behind err, or returns "".
func classify(err error) string {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if stderrors.Is(err, context.Canceled) {
		return "canceled"
	}

	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return ""
	}

	switch pqErr.Code {
	case "40001":
		return "serialization failure"
	case "40P01":
		return "deadlock detected"
	case "55P03":
		return "lock not available"
	case "57014":
		return "statement canceled"
	case "23514":
		return "check constraint violated"
	case "23503":
		return "foreign key violated"
	default:
		return pqErr.Code.Name()
	}
}

func storeError(op string, err error) error {
	return &domain.StoreError{Op: op, Reason: classify(err), Err: err}
}
