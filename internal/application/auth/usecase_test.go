package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rentalops/internal/application/auth"
	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/domain"
	"github.com/jhoicas/rentalops/internal/domain/access"
	"github.com/jhoicas/rentalops/internal/domain/entity"
	pkgjwt "github.com/jhoicas/rentalops/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type fakeUserRepo struct {
	users map[string]*entity.User
	err   error
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[email], nil
}

func newUseCase(t *testing.T, users ...*entity.User) *auth.AuthUseCase {
	t.Helper()
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "rentalops-test"})
}

func user(t *testing.T, email, role, status string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: "u-" + email, Email: email, PasswordHash: string(hash), Name: "Usuario " + role, Role: role, Status: status}
}

func TestLogin_OKDevuelveTokenYLanding(t *testing.T) {
	uc := newUseCase(t, user(t, "fin@rentas.local", "FIN", entity.UserStatusActive))

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  FIN@rentas.local ", Password: "clave-segura"})
	require.NoError(t, err)

	assert.Equal(t, "/fin/dashboard", out.Landing)
	assert.Equal(t, "FIN", out.User.Role)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-fin@rentas.local", claims.UserID)
	assert.Equal(t, "FIN", claims.Role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newUseCase(t, user(t, "es@rentas.local", "ES", entity.UserStatusActive))
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "es@rentas.local", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newUseCase(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@rentas.local", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioSuspendido(t *testing.T) {
	uc := newUseCase(t, user(t, "rc@rentas.local", "RC", entity.UserStatusSuspended))
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "rc@rentas.local", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un rol mal escrito en la DB no debe producir una sesión que luego
// rebote entre "/" y el dashboard por defecto.
func TestLogin_RolDesconocidoNoEmiteToken(t *testing.T) {
	uc := newUseCase(t, user(t, "x@rentas.local", "Finance", entity.UserStatusActive))
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "x@rentas.local", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_ErrorDeRepositorio(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{}, err: errors.New("db caída")}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60})
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.c", Password: "x"})
	assert.EqualError(t, err, "db caída")
}

func TestSessionFromToken(t *testing.T) {
	uc := newUseCase(t)

	tok, err := pkgjwt.Generate(testSecret, "u1", "Data Entry", "Carla", "rentalops-test", 60)
	require.NoError(t, err)

	s, err := uc.SessionFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, &access.Session{UserID: "u1", Role: access.RoleDataEntry, Name: "Carla"}, s)
}

func TestSessionFromToken_RolDesconocidoQuedaUnknown(t *testing.T) {
	uc := newUseCase(t)
	tok, err := pkgjwt.Generate(testSecret, "u1", "Finance", "", "rentalops-test", 60)
	require.NoError(t, err)

	s, err := uc.SessionFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, access.RoleUnknown, s.Role)
}

func TestSessionFromToken_Invalido(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.SessionFromToken("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.SessionFromToken("token.invalido.aqui")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	expired, err := pkgjwt.Generate(testSecret, "u1", "ES", "", "rentalops-test", -1)
	require.NoError(t, err)
	_, err = uc.SessionFromToken(expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestHashPassword(t *testing.T) {
	h, err := auth.HashPassword("clave-segura")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("clave-segura")))
}
