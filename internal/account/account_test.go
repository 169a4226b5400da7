package account

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/logging"
)

func TestValidatePasswordChange(t *testing.T) {
	t.Parallel()
	err := ValidatePasswordChange("old", "a", "b")
	var ve apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "confirmNewPassword" || ve.Message != "New passwords do not match" {
		t.Errorf("unexpected error: %+v", ve)
	}
	if err := ValidatePasswordChange("", "same", "same"); err != nil {
		t.Errorf("matching passwords rejected: %v", err)
	}
}

func TestPasswordForm_Submit(t *testing.T) {
	t.Parallel()
	t.Run("mismatch only sets Err", func(t *testing.T) {
		t.Parallel()
		form := PasswordForm{Current: "old", New: "a", Confirm: "b", Notice: "earlier"}
		got := form.Submit()
		if got.Current != "old" || got.New != "a" || got.Confirm != "b" || got.Notice != "earlier" {
			t.Errorf("fields changed: %+v", got)
		}
		if got.Err == nil || got.Err.Error() != MsgNewPasswordsMismatch {
			t.Errorf("Err = %v", got.Err)
		}
	})
	t.Run("success clears fields", func(t *testing.T) {
		t.Parallel()
		form := PasswordForm{Current: "old", New: "n", Confirm: "n", Err: errors.New("stale")}
		got := form.Submit()
		if got != (PasswordForm{Notice: PasswordChangedNotice}) {
			t.Errorf("got %+v", got)
		}
	})
}

func TestPasswordForm_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("different entries are rejected without clearing", prop.ForAll(
		func(current, next, confirm string) bool {
			if next == confirm {
				return true
			}
			got := PasswordForm{Current: current, New: next, Confirm: confirm}.Submit()
			return got.Err != nil && got.Current == current && got.New == next && got.Confirm == confirm
		},
		gen.AnyString(), gen.AnyString(), gen.AnyString(),
	))

	properties.Property("equal entries are accepted", prop.ForAll(
		func(current, next string) bool {
			got := PasswordForm{Current: current, New: next, Confirm: next}.Submit()
			return got.Err == nil && got.Notice == PasswordChangedNotice && got.New == ""
		},
		gen.AnyString(), gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestValidateRegistration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		email     string
		password  string
		confirm   string
		wantField string
	}{
		{"valid", "a@b.c", "pw", "pw", ""},
		{"missing email", " ", "pw", "pw", "email"},
		{"missing password", "a@b.c", "", "", "password"},
		{"mismatch", "a@b.c", "pw", "wp", "confirmPassword"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateRegistration(tt.email, tt.password, tt.confirm)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			var ve apperrors.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.wantField {
				t.Errorf("error = %v, want field %s", err, tt.wantField)
			}
		})
	}
	if err := ValidateRegistration("a@b.c", "x", "y"); err.Error() != "Passwords do not match" {
		t.Errorf("mismatch message = %q", err.Error())
	}
}

func TestValidateCredentials(t *testing.T) {
	t.Parallel()
	if err := ValidateCredentials("a@b.c", "pw"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := ValidateCredentials("", "pw"); err == nil || err.Error() != "Email address is required" {
		t.Errorf("missing email error = %v", err)
	}
	if err := ValidateCredentials("a@b.c", ""); err == nil || err.Error() != "Password is required" {
		t.Errorf("missing password error = %v", err)
	}
}

func TestService_Routes(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	s := NewService(logging.NewLogger(&buf, "account"))

	if got := s.Login("alice@example.com", "hunter2"); got != RouteDashboard {
		t.Errorf("Login = %s", got)
	}
	if got, err := s.Register("alice@example.com", "pw", "pw"); err != nil || got != RouteLogin {
		t.Errorf("Register = %s, %v", got, err)
	}
	if got, err := s.Register("alice@example.com", "pw", "other"); err == nil || got != RouteRegister {
		t.Errorf("Register mismatch = %s, %v", got, err)
	}
	if got := s.DeleteAccount(false); got != RouteDashboard {
		t.Errorf("unconfirmed delete = %s", got)
	}
	if got := s.DeleteAccount(true); got != RouteLogin {
		t.Errorf("confirmed delete = %s", got)
	}
	if got := s.Logout(); got != RouteLogin {
		t.Errorf("Logout = %s", got)
	}
	if form := s.ChangePassword(PasswordForm{New: "x", Confirm: "x"}); form.Notice != PasswordChangedNotice {
		t.Errorf("ChangePassword = %+v", form)
	}
	if form := s.ChangePassword(PasswordForm{New: "a", Confirm: "b"}); form.Err == nil {
		t.Errorf("ChangePassword mismatch = %+v", form)
	}

	logs := buf.String()
	if strings.Contains(logs, "hunter2") {
		t.Error("password must never be logged")
	}
	if strings.Contains(logs, "alice@example.com") || !strings.Contains(logs, "a***@example.com") {
		t.Errorf("email should be masked in logs: %s", logs)
	}
	if !strings.Contains(logs, `"reason":"validation error for \"confirmNewPassword\": New passwords do not match"`) {
		t.Errorf("rejected password change should log the field: %s", logs)
	}
	if !strings.Contains(logs, `"reason":"validation error for`) || !strings.Contains(logs, MsgPasswordsMismatch) {
		t.Errorf("rejected registration should log the reason: %s", logs)
	}
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"alice@example.com": "a***@example.com",
		"x@y":               "x***@y",
		"no-at-sign":        "***",
		"@domain":           "***",
		"":                  "***",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Errorf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
