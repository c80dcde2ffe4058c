package security

import (
	"context"
	"errors"

	"group-manager/internal/domain"
	"group-manager/internal/logging"
)

const msgTryAgain = "Something went wrong, please try again later"

// requireCaller rejects an unresolved caller identity.
func requireCaller(callerID int64) error {
	if callerID <= 0 {
		return domain.ErrUnauthenticated("authentication required")
	}
	return nil
}

// storeFailure wraps an unexpected store error. Errors that are already
// a *StoreFailureError pass through.
func storeFailure(ctx context.Context, err error, op string) error {
	var sf *domain.StoreFailureError
	if errors.As(err, &sf) {
		return err
	}
	logging.From(ctx).Error("group store failure", "op", op, "error", err)
	return domain.ErrStoreFailure(err, msgTryAgain)
}

// noEffect reports a write that the store accepted but did not apply.
func noEffect(ctx context.Context, op string) error {
	logging.From(ctx).Warn("group store reported no effect", "op", op)
	return domain.ErrStoreFailure(nil, msgTryAgain)
}
