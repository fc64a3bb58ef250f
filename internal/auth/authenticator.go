package auth

import (
	"context"

	"github.com/mmynk/boatfinance/internal/models"
)

// Authenticator verifies who a caller is. The returned user's ID becomes the
// caller identity that owns saved calculations.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
