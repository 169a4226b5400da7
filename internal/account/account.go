package account

import (
	"errors"
	"strings"
	"unicode/utf8"

	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/logging"
)

// Route identifies a dashboard screen.
type Route string

const (
	RouteDashboard Route = "/"
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
)

// User-facing messages.
const (
	MsgPasswordsMismatch    = "Passwords do not match"
	MsgNewPasswordsMismatch = "New passwords do not match"
	PasswordChangedNotice   = "Password changed successfully"
	DeleteConfirmText       = "Are you sure you want to delete your account? This action cannot be undone."
)

// ValidatePasswordChange checks that the two new-password entries are equal.
// The current password is not verified.
func ValidatePasswordChange(current, next, confirm string) error {
	if next != confirm {
		return apperrors.ValidationError{Field: "confirmNewPassword", Message: MsgNewPasswordsMismatch}
	}
	return nil
}

// ValidateCredentials checks that both sign-in fields are filled in.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.ValidationError{Field: "email", Message: "Email address is required"}
	}
	if password == "" {
		return apperrors.ValidationError{Field: "password", Message: "Password is required"}
	}
	return nil
}

// ValidateRegistration checks the registration form.
func ValidateRegistration(email, password, confirm string) error {
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	if password != confirm {
		return apperrors.ValidationError{Field: "confirmPassword", Message: MsgPasswordsMismatch}
	}
	return nil
}

// PasswordForm is the value of the change-password form.
type PasswordForm struct {
	Current string
	New     string
	Confirm string
	// Err is the validation error of the last submit.
	Err error
	// Notice is the confirmation shown after a successful change.
	Notice string
}

// Submit validates the form. On failure only Err changes. On success the
// fields are cleared and Notice is set.
func (f PasswordForm) Submit() PasswordForm {
	if err := ValidatePasswordChange(f.Current, f.New, f.Confirm); err != nil {
		f.Err = err
		return f
	}
	return PasswordForm{Notice: PasswordChangedNotice}
}

// Service runs the account flows and logs each attempt.
type Service struct {
	logger logging.Logger
}

// NewService creates a service. A nil logger discards.
func NewService(logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{logger: logger}
}

// Login signs the user in. Any credentials are accepted.
func (s *Service) Login(email, _ string) Route {
	s.logger.Info("sign in", logging.String("email", MaskEmail(email)))
	return RouteDashboard
}

// Register validates the form and returns the login screen on success.
func (s *Service) Register(email, password, confirm string) (Route, error) {
	if err := ValidateRegistration(email, password, confirm); err != nil {
		s.logger.Debug("registration rejected", logging.String("email", MaskEmail(email)), rejection(err))
		return RouteRegister, err
	}
	s.logger.Info("account registered", logging.String("email", MaskEmail(email)))
	return RouteLogin, nil
}

// ChangePassword submits form and logs the outcome.
func (s *Service) ChangePassword(form PasswordForm) PasswordForm {
	next := form.Submit()
	if next.Err != nil {
		s.logger.Debug("password change rejected", rejection(next.Err))
	} else {
		s.logger.Info("password changed")
	}
	return next
}

// DeleteAccount deletes the account if confirmed. Without confirmation the
// user stays on the dashboard.
func (s *Service) DeleteAccount(confirmed bool) Route {
	if !confirmed {
		return RouteDashboard
	}
	s.logger.Info("account deleted")
	return RouteLogin
}

// Logout signs the user out.
func (s *Service) Logout() Route {
	s.logger.Info("sign out")
	return RouteLogin
}

// rejection describes a failed validation for the logs.
func rejection(err error) logging.Field {
	var ve apperrors.ValidationError
	if errors.As(err, &ve) {
		return logging.String("reason", ve.Detail())
	}
	return logging.Err(err)
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" {
		return "***"
	}
	_, size := utf8.DecodeRuneInString(local)
	return local[:size] + "***@" + domain
}
