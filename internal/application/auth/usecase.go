package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/domain"
	"github.com/jhoicas/rentalops/internal/domain/access"
	"github.com/jhoicas/rentalops/internal/domain/repository"
	"github.com/jhoicas/rentalops/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase es el proveedor de sesión: login con email/password y
// validación del token que viaja en la cookie.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password y emite el token de sesión.
// Usuarios inactivos o con un rol fuera del catálogo reciben ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	role := access.ParseRole(user.Role)
	if !role.Known() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, role.String(), user.Name, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Landing: access.Default().DashboardForRole(role),
		User: dto.UserResponse{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Role:       role.String(),
			DistrictID: user.DistrictID,
		},
	}, nil
}

// SessionFromToken valida el token y devuelve la sesión que transporta.
// Un rol desconocido no es error: la sesión queda con RoleUnknown y el guard decide.
func (uc *AuthUseCase) SessionFromToken(token string) (*access.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return &access.Session{
		UserID: claims.UserID,
		Role:   access.ParseRole(claims.Role),
		Name:   claims.Name,
	}, nil
}

// TTLMinutes duración de la sesión en minutos (la cookie usa el mismo valor).
func (uc *AuthUseCase) TTLMinutes() int {
	return uc.jwtCfg.ExpMinutes
}

// HashPassword genera el hash bcrypt de una contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
