package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/domain"
	"github.com/jhoicas/rentalops/internal/domain/access"
	"github.com/jhoicas/rentalops/pkg/logger"
	"github.com/jhoicas/rentalops/pkg/validator"
)

// Authenticator proveedor de sesión que usan las páginas y la API.
type Authenticator interface {
	SessionProvider
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	TTLMinutes() int
}

const publicLayout = "layouts/public"

// AuthHandler maneja login y logout.
type AuthHandler struct {
	uc     Authenticator
	cookie CookieSettings
	log    *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc Authenticator, cookie CookieSettings, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie, log: log.Component("auth")}
}

// LoginPage muestra el formulario. Con sesión válida manda al dashboard.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if s := GetSession(c); s.Present() && s.Role.Known() {
		return c.Redirect(access.ResolveLanding(s), fiber.StatusSeeOther)
	}
	return h.renderLogin(c, fiber.StatusOK, dto.LoginRequest{}, "", nil)
}

// LoginSubmit procesa el formulario: cookie de sesión y 303 al dashboard del rol.
func (h *AuthHandler) LoginSubmit(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.renderLogin(c, fiber.StatusBadRequest, in, "No se pudo leer el formulario.", nil)
	}
	if err := validator.Validate(in); err != nil {
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			return h.renderLogin(c, fiber.StatusUnprocessableEntity, in, "Revise los campos marcados.", ve.Fields())
		}
		return h.renderLogin(c, fiber.StatusUnprocessableEntity, in, err.Error(), nil)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		status, msg := h.loginFailure(c, in.Email, err)
		return h.renderLogin(c, status, in, msg, nil)
	}
	writeSessionCookie(c, h.cookie, out.Token, time.Duration(h.uc.TTLMinutes())*time.Minute)
	h.log.Info().Str("user_id", out.User.ID).Str("role", out.User.Role).Msg("sesión iniciada")
	return c.Redirect(out.Landing, fiber.StatusSeeOther)
}

// LoginLimited respuesta del formulario cuando se excede el límite de intentos.
func (h *AuthHandler) LoginLimited(c *fiber.Ctx) error {
	return h.renderLogin(c, fiber.StatusTooManyRequests, dto.LoginRequest{},
		"Demasiados intentos de inicio de sesión. Espere un minuto e intente de nuevo.", nil)
}

// Logout borra la cookie y vuelve al login.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	deleteSessionCookie(c, h.cookie)
	return c.Redirect(access.LoginPath, fiber.StatusSeeOther)
}

// Login godoc
// @Summary      Iniciar sesión (API)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.Validate(in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva o sin un rol habilitado"})
		}
		h.log.Error().Err(err).Msg("login API")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

func (h *AuthHandler) loginFailure(c *fiber.Ctx, email string, err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		h.log.Warn().Str("ip", c.IP()).Str("email", email).Msg("credenciales inválidas")
		return fiber.StatusUnauthorized, "Email o contraseña incorrectos."
	case errors.Is(err, domain.ErrForbidden):
		h.log.Warn().Str("email", email).Msg("cuenta sin acceso")
		return fiber.StatusForbidden, "La cuenta está inactiva o no tiene un rol habilitado."
	default:
		h.log.Error().Err(err).Msg("login")
		return fiber.StatusInternalServerError, "No fue posible iniciar sesión. Intente de nuevo más tarde."
	}
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, status int, in dto.LoginRequest, msg string, fields map[string]string) error {
	return c.Status(status).Render("auth/login", fiber.Map{
		"Title":  "Iniciar sesión",
		"Email":  in.Email,
		"Error":  msg,
		"Fields": fields,
	}, publicLayout)
}

// HomeHandler atiende "/".
type HomeHandler struct {
	cookie CookieSettings
}

// NewHomeHandler construye el handler de inicio.
func NewHomeHandler(cookie CookieSettings) *HomeHandler {
	return &HomeHandler{cookie: cookie}
}

// Landing redirige al dashboard del rol o al login. Una sesión con un rol
// fuera del catálogo se descarta: su dashboard por defecto la devolvería a "/".
func (h *HomeHandler) Landing(c *fiber.Ctx) error {
	s := GetSession(c)
	if s.Present() && !s.Role.Known() {
		deleteSessionCookie(c, h.cookie)
		return c.Redirect(access.LoginPath, fiber.StatusSeeOther)
	}
	return c.Redirect(access.ResolveLanding(s), fiber.StatusSeeOther)
}
