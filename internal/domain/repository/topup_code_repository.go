package repository

import (
	"context"
	"errors"
	"time"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCodeUnavailable is returned when a top-up code does not exist or has
// already been redeemed. The two cases are deliberately indistinguishable.
var ErrCodeUnavailable = errors.New("top-up code invalid or already redeemed")

// TopupCodeRepository defines the interface for single-use top-up codes.
type TopupCodeRepository interface {
	// Create persists a new admin-issued code.
	Create(ctx context.Context, code *entity.TopupCode) error

	// List returns issued codes, newest first, for the admin view.
	List(ctx context.Context, limit, offset int) ([]*entity.TopupCode, error)

	// Redeem consumes the code with a single conditional update guarded by
	// redeemed_by IS NULL, and returns the consumed code. A miss returns
	// ErrCodeUnavailable whether the code is absent or already used.
	Redeem(ctx context.Context, code string, userID uuid.UUID, at time.Time) (*entity.TopupCode, error)
}
