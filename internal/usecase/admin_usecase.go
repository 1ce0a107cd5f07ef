package usecase

import (
	"context"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUsecase defines the interface for platform moderation.
type AdminUsecase interface {
	// VerifySeller flips the seller profile to verified. Verifying an already
	// verified profile is a no-op success.
	VerifySeller(ctx context.Context, adminID, userID uuid.UUID) (*entity.User, error)

	// VerifyDriver flips the driver profile to verified.
	VerifyDriver(ctx context.Context, adminID, userID uuid.UUID) (*entity.User, error)

	ListUsers(ctx context.Context, page Page) ([]*entity.User, error)
}
