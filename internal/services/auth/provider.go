package auth

import (
	"context"
	"errors"
	"net/url"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/validation"

	"golang.org/x/crypto/bcrypt"
)

// Provider verifies a submitted credential set. It returns nil on success.
type Provider interface {
	SignIn(ctx context.Context, fields url.Values) error
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordProvider checks an email and password against bcrypt hashes in the
// users table.
type PasswordProvider struct {
	validator *validation.Validator
	users     UserStore
}

func NewPasswordProvider(v *validation.Validator, users UserStore) *PasswordProvider {
	return &PasswordProvider{validator: v, users: users}
}

func (p *PasswordProvider) SignIn(ctx context.Context, fields url.Values) error {
	creds, errs := p.validator.Credentials(fields)
	if errs != nil {
		return &AuthError{Type: CredentialsSignin}
	}

	user, err := p.users.FindByEmail(ctx, creds.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return &AuthError{Type: CredentialsSignin}
	}
	if err != nil {
		return &AuthError{Type: CallbackRouteError, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return &AuthError{Type: CredentialsSignin}
		}
		// stored value is not a usable hash
		return &AuthError{Type: CallbackRouteError, Err: err}
	}
	return nil
}

// HashPassword produces the value stored in users.password.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

var _ Provider = (*PasswordProvider)(nil)
