package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/projectpulse/project-system/internal/core/domain"
)

const testSecret = "test-secret"

func TestAuthService_RegisterAndLogin(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Errorf("role = %s, want client", user.Role)
	}
	if user.PasswordHash == "correct horse" || user.PasswordHash == "" {
		t.Error("password stored unhashed or empty")
	}

	token, logged, err := svc.Login(context.Background(), "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as %s, want %s", logged.ID, user.ID)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ExternalID {
		t.Errorf("sub = %v, want %s", claims["sub"], user.ExternalID)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "password1"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Imposter", "ada@example.com", "password2")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, err := svc.Login(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

// Unknown email and wrong password are indistinguishable to the caller.
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	for _, tc := range []struct{ name, email, password string }{
		{"", "a@b.c", "password"},
		{"Ada", "", "password"},
		{"Ada", "a@b.c", ""},
	} {
		_, err := svc.Register(context.Background(), tc.name, tc.email, tc.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%+v: err = %v, want ErrInvalidCredentials", tc, err)
		}
	}
}
