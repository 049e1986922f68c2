package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *mockStore) {
	t.Helper()
	store := newMockStore()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(bcrypt.MinCost)
	return NewAuthService(store, tokens, passwords, testLogger()), store
}

func TestSignUp(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.SignUp(context.Background(), "Alice@Example.com", "hunter2-extra")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	if result.Token == "" {
		t.Error("SignUp() issued no session token")
	}
	if result.Profile.Email != "alice@example.com" {
		t.Errorf("Email = %q, want lowercased", result.Profile.Email)
	}
	if result.Profile.Username != "alice" {
		t.Errorf("Username = %q, want the email's local part", result.Profile.Username)
	}
	if result.Profile.PasswordHash == "hunter2-extra" {
		t.Error("password stored in plaintext")
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "dup@example.com", "password-one"); err != nil {
		t.Fatalf("first SignUp() error = %v", err)
	}

	_, err := svc.SignUp(ctx, "dup@example.com", "password-two")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second SignUp() error = %v, want ErrConflict", err)
	}
}

func TestSignUp_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "long-enough-pass"},
		{"no at sign", "not-an-email", "long-enough-pass"},
		{"short password", "ok@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tc.email, tc.password)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("SignUp(%q, %q) error = %v, want ErrValidation", tc.email, tc.password, err)
			}
		})
	}
}

func TestSignIn_RoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	signedUp, err := svc.SignUp(ctx, "bob@example.com", "correct-password")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	result, err := svc.SignIn(ctx, "bob@example.com", "correct-password")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if result.Profile.ID != signedUp.Profile.ID {
		t.Errorf("SignIn() profile id = %q, want %q", result.Profile.ID, signedUp.Profile.ID)
	}

	userID, err := svc.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if userID != result.Profile.ID {
		t.Errorf("token subject = %q, want %q", userID, result.Profile.ID)
	}
}

func TestSignIn_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "carol@example.com", "real-password"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	_, errWrongPass := svc.SignIn(ctx, "carol@example.com", "wrong-password")
	_, errNoUser := svc.SignIn(ctx, "nobody@example.com", "whatever-pass")

	if errWrongPass == nil || errNoUser == nil {
		t.Fatal("SignIn() must fail for wrong password and unknown email")
	}
	// Same message both ways: the endpoint must not reveal which emails exist.
	if errWrongPass.Error() != errNoUser.Error() {
		t.Errorf("credential errors differ: %q vs %q", errWrongPass, errNoUser)
	}
}

func TestLoginOrRegisterGitHub(t *testing.T) {
	svc, store := newTestAuthService(t)
	ctx := context.Background()

	ghUser := &auth.GitHubUser{
		ID:        777,
		Login:     "octocat",
		Email:     "octo@example.com",
		AvatarURL: "https://avatars.example.com/777",
	}

	first, err := svc.LoginOrRegisterGitHub(ctx, ghUser)
	if err != nil {
		t.Fatalf("LoginOrRegisterGitHub() error = %v", err)
	}
	if first.Profile.Username != "octocat" {
		t.Errorf("Username = %q, want the GitHub login", first.Profile.Username)
	}

	// Second login: same GitHub id, must reuse the profile.
	second, err := svc.LoginOrRegisterGitHub(ctx, ghUser)
	if err != nil {
		t.Fatalf("second LoginOrRegisterGitHub() error = %v", err)
	}
	if second.Profile.ID != first.Profile.ID {
		t.Errorf("second login created a new profile: %q != %q", second.Profile.ID, first.Profile.ID)
	}
	if len(store.profiles) != 1 {
		t.Errorf("profiles = %d rows, want 1", len(store.profiles))
	}
}

func TestLoginOrRegisterGitHub_HiddenEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.LoginOrRegisterGitHub(context.Background(), &auth.GitHubUser{
		ID:    888,
		Login: "private-person",
	})
	if err != nil {
		t.Fatalf("LoginOrRegisterGitHub() error = %v", err)
	}
	if result.Profile.Email == "" {
		t.Error("profile created with empty email for a hidden GitHub email")
	}
}

func TestEnsureProfile_Idempotent(t *testing.T) {
	svc, store := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.EnsureProfile(ctx, "subject-1", "dana@example.com"); err != nil {
		t.Fatalf("EnsureProfile() error = %v", err)
	}

	// The user customizes their profile.
	stored := store.profiles["subject-1"]
	stored.Username = "dana-the-great"

	// A later sign-in runs ensure-profile again with the same raw inputs.
	if _, err := svc.EnsureProfile(ctx, "subject-1", "dana@example.com"); err != nil {
		t.Fatalf("repeat EnsureProfile() error = %v", err)
	}

	got, err := store.GetProfileByID(ctx, "subject-1")
	if err != nil {
		t.Fatalf("GetProfileByID() error = %v", err)
	}
	if got.Username != "dana-the-great" {
		t.Errorf("Username = %q, want the customized name to survive", got.Username)
	}
	if len(store.profiles) != 1 {
		t.Errorf("profiles = %d rows, want 1", len(store.profiles))
	}
}
