package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lavanyasahu/CitiFix/common"
	"github.com/lavanyasahu/CitiFix/models"
	"github.com/lavanyasahu/CitiFix/store"
)

func newAuthService() *AuthService {
	return NewAuthService(store.NewMemoryStore())
}

func TestRegisterAndLogin(t *testing.T) {
	s := newAuthService()
	ctx := context.Background()

	id, err := s.RegisterCitizen(ctx, "alice", "alice@example.com", "password1", nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id.IsZero() {
		t.Fatal("expected a generated id")
	}

	user, err := s.Login(ctx, "alice", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "alice" || user.Role != models.RoleCitizen {
		t.Fatalf("unexpected profile: %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatal("login profile must not carry the password hash")
	}
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	s := newAuthService()
	ctx := context.Background()

	if _, err := s.RegisterCitizen(ctx, "bob", "bob@example.com", "password1", nil); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := s.RegisterCitizen(ctx, "bob", "other@example.com", "password1", nil)
	if !errors.Is(err, common.ErrDuplicateIdentity) {
		t.Fatalf("duplicate username: got %v", err)
	}
	_, err = s.RegisterCitizen(ctx, "robert", "bob@example.com", "password1", nil)
	if !errors.Is(err, common.ErrDuplicateIdentity) {
		t.Fatalf("duplicate email: got %v", err)
	}

	users, err := s.ListUsers(ctx, Actor{Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("failed registration mutated user count: %d", len(users))
	}
}

func TestRegisterIdentityIsCaseSensitive(t *testing.T) {
	// Uniqueness is exact-match, the same comparison the database's
	// unique indexes apply with the default collation.
	s := newAuthService()
	ctx := context.Background()

	if _, err := s.RegisterCitizen(ctx, "carol", "carol@example.com", "password1", nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := s.RegisterCitizen(ctx, "Carol", "Carol@example.com", "password1", nil); err != nil {
		t.Fatalf("differently-cased identity: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newAuthService()
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@example.com", "password1"},
		{"bad email", "carol", "not-an-email", "password1"},
		{"short password", "carol", "carol@example.com", "pw"},
	}
	for _, tc := range cases {
		if _, err := s.RegisterCitizen(ctx, tc.username, tc.email, tc.password, nil); !errors.Is(err, common.ErrValidation) {
			t.Fatalf("%s: got %v", tc.name, err)
		}
	}

	badPhone := "not a phone"
	if _, err := s.RegisterCitizen(ctx, "carol", "carol@example.com", "password1", &badPhone); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("bad phone: got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newAuthService()
	ctx := context.Background()

	if _, err := s.RegisterCitizen(ctx, "alice", "alice@example.com", "password1", nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, errWrongPw := s.Login(ctx, "alice", "wrong")
	_, errNoUser := s.Login(ctx, "nonexistent", "anything")

	if !errors.Is(errWrongPw, common.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errWrongPw)
	}
	if !errors.Is(errNoUser, common.ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", errNoUser)
	}
}

func TestRoleFilteredLogins(t *testing.T) {
	s := newAuthService()
	ctx := context.Background()

	if _, err := s.RegisterCitizen(ctx, "cit", "cit@example.com", "password1", nil); err != nil {
		t.Fatalf("register citizen: %v", err)
	}
	if _, err := s.CreateAdmin(ctx, "root", "root@example.com", "password1", nil); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	// An admin is not a citizen, and the rejection must look like a bad
	// password.
	if _, err := s.LoginCitizen(ctx, "root", "password1"); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("admin via citizen login: got %v", err)
	}
	if _, err := s.LoginAuthority(ctx, "cit", "password1"); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("citizen via authority login: got %v", err)
	}

	// Admins pass the authority filter.
	if _, err := s.LoginAuthority(ctx, "root", "password1"); err != nil {
		t.Fatalf("admin via authority login: %v", err)
	}
	if _, err := s.LoginCitizen(ctx, "cit", "password1"); err != nil {
		t.Fatalf("citizen login: %v", err)
	}
}

func TestCreateAuthorityRequiresAdmin(t *testing.T) {
	s := newAuthService()
	ctx := context.Background()

	adminID, err := s.CreateAdmin(ctx, "root", "root@example.com", "password1", nil)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	_, err = s.CreateAuthority(ctx, Actor{Role: models.RoleCitizen}, "auth1", "auth1@example.com", "password1", nil)
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("citizen creating authority: got %v", err)
	}

	id, err := s.CreateAuthority(ctx, Actor{ID: adminID, Role: models.RoleAdmin}, "auth1", "auth1@example.com", "password1", nil)
	if err != nil {
		t.Fatalf("admin creating authority: %v", err)
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("get authority: %v", err)
	}
	if user.Role != models.RoleAuthority {
		t.Fatalf("expected authority role, got %q", user.Role)
	}
}

func TestListUsersRequiresAdmin(t *testing.T) {
	s := newAuthService()
	ctx := context.Background()

	if _, err := s.ListUsers(ctx, Actor{Role: models.RoleAuthority}); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("authority listing users: got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newAuthService()

	_, err := s.GetUser(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}
