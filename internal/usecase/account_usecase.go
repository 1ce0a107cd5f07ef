package usecase

import (
	"context"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Every account starts as a buyer; seller and driver capabilities are applied
// for separately.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ApplySellerInput defines the data required to request the seller capability.
type ApplySellerInput struct {
	BusinessName    string
	BusinessAddress string
}

// ApplyDriverInput defines the data required to request the driver capability.
type ApplyDriverInput struct {
	VehicleType  string
	VehiclePlate string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
	Roles        entity.Roles
}

// ProfileOutput returns an account with its resolved capability set.
// PrimaryRole picks the dashboard to land on: admin over driver over seller
// over buyer.
type ProfileOutput struct {
	User        *entity.User
	Roles       entity.Roles
	PrimaryRole entity.Role
}

// AccountUsecase defines the interface for identity and capability operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginOutput, error)

	// GetProfile resolves the account's capability set. A bare account still
	// resolves: the buyer capability is implicit and never missing.
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)

	// ApplySeller attaches an unverified seller profile to the account.
	ApplySeller(ctx context.Context, userID uuid.UUID, input *ApplySellerInput) (*ProfileOutput, error)

	// ApplyDriver attaches an unverified driver profile to the account.
	ApplyDriver(ctx context.Context, userID uuid.UUID, input *ApplyDriverInput) (*ProfileOutput, error)
}
