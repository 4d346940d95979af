package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/sakif/news-channel/internal/apperror"
	"github.com/sakif/news-channel/internal/auth"
	"github.com/sakif/news-channel/internal/model"
)

// fakeUserRepo is an in-memory UserRepository. A hand-written fake (not a
// mock framework) keeps the tests readable — what it does is all on the page.
type fakeUserRepo struct {
	byEmail map[string]*model.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User), nextID: 1}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return apperror.Conflict("User already exists")
	}
	for _, u := range r.byEmail {
		if u.Username == user.Username {
			return apperror.Conflict("User already exists")
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return u, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, tokens, auth.NewPasswordServiceForTest(4), testLogger())
	return svc, repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService(t)

	res, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if res.User.ID != 1 {
		t.Errorf("ID = %d, want 1", res.User.ID)
	}
	if res.Token == "" {
		t.Error("Register() should issue a token")
	}
	if res.User.PasswordHash == "pw123" {
		t.Error("password must not be stored as plaintext")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)

	cases := []struct{ username, email, password string }{
		{"", "a@x.com", "pw"},
		{"alice", "", "pw"},
		{"alice", "a@x.com", ""},
	}
	for _, c := range cases {
		_, err := svc.Register(context.Background(), c.username, c.email, c.password)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Register(%q,%q,...) error = %v, want ErrValidation", c.username, c.email, err)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw123"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "alice2", "alice@x.com", "pw456")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Register() error = %v, want ErrConflict", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)

	reg, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	res, err := svc.Login(context.Background(), "alice@x.com", "pw123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.User.ID != reg.User.ID {
		t.Errorf("Login user ID = %d, want %d", res.User.ID, reg.User.ID)
	}
	if res.Token == "" {
		t.Error("Login() should issue a token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	svc.Register(context.Background(), "alice", "alice@x.com", "pw123")

	_, err := svc.Login(context.Background(), "alice@x.com", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Login() error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService(t)
	svc.Register(context.Background(), "alice", "alice@x.com", "pw123")

	_, errUnknown := svc.Login(context.Background(), "nobody@x.com", "pw123")
	_, errWrongPw := svc.Login(context.Background(), "alice@x.com", "wrong")

	// Same sentinel, same message — no account-enumeration oracle.
	if !errors.Is(errUnknown, apperror.ErrUnauthorized) || !errors.Is(errWrongPw, apperror.ErrUnauthorized) {
		t.Fatalf("errors = %v / %v, both should be ErrUnauthorized", errUnknown, errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("messages differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Login with empty email: error = %v, want ErrValidation", err)
	}
	if _, err := svc.Login(context.Background(), "a@x.com", ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Login with empty password: error = %v, want ErrValidation", err)
	}
}
