package auth

import "fmt"

// ErrorType classifies a recognized authentication fault.
type ErrorType string

const (
	// CredentialsSignin means the submitted credentials did not match a user.
	CredentialsSignin ErrorType = "CredentialsSignin"
	// CallbackRouteError means the provider could not complete the check.
	CallbackRouteError ErrorType = "CallbackRouteError"
)

// AuthError is the only fault category the Verifier turns into a message.
// Anything else a Provider returns is passed through untouched.
type AuthError struct {
	Type ErrorType
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth: " + string(e.Type)
	}
	return fmt.Sprintf("auth: %s: %v", e.Type, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
