package auth

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"
)

const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWentWrong = "Something went wrong."
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeInvalidCredentials
	OutcomeAuthFault
	OutcomeUnclassified
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidCredentials:
		return "invalid_credentials"
	case OutcomeAuthFault:
		return "auth_fault"
	default:
		return "unclassified"
	}
}

// Result is the classified outcome of one sign-in attempt. Message is set for
// the two recoverable outcomes, Err only for OutcomeUnclassified.
type Result struct {
	Outcome Outcome
	Message string
	Err     error
}

type Verifier struct {
	provider Provider
	logger   *zap.Logger
}

func NewVerifier(provider Provider, logger *zap.Logger) *Verifier {
	return &Verifier{provider: provider, logger: logger.Named("auth")}
}

func (v *Verifier) Verify(ctx context.Context, fields url.Values) Result {
	err := v.provider.SignIn(ctx, fields)
	if err == nil {
		return Result{Outcome: OutcomeSuccess}
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return Result{Outcome: OutcomeUnclassified, Err: err}
	}

	if authErr.Type == CredentialsSignin {
		return Result{Outcome: OutcomeInvalidCredentials, Message: MsgInvalidCredentials}
	}
	v.logger.Warn("sign-in failed", zap.String("type", string(authErr.Type)), zap.Error(authErr.Err))
	return Result{Outcome: OutcomeAuthFault, Message: MsgSomethingWentWrong}
}

// Authenticate returns "" on success, a fixed message for a recognized fault,
// and a non-nil error only for a fault it cannot classify.
func (v *Verifier) Authenticate(ctx context.Context, fields url.Values) (string, error) {
	res := v.Verify(ctx, fields)
	if res.Outcome == OutcomeUnclassified {
		return "", res.Err
	}
	return res.Message, nil
}
