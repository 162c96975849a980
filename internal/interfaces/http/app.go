package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/pkg/logger"
	"github.com/jhoicas/rentalops/pkg/metrics"
)

// AppOptions opciones para construir la aplicación Fiber.
type AppOptions struct {
	Name    string
	Log     *logger.Logger
	Metrics *metrics.Metrics
}

// NewApp crea la app con vistas embebidas, recover y log de peticiones.
// Las rutas distinguen mayúsculas: "/FIN/..." no entra al grupo "/fin".
func NewApp(opts AppOptions) *fiber.App {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:       opts.Name,
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  30 * time.Second,
		Views:         NewViewEngine(),
		ViewsLayout:   DefaultLayout,
		ErrorHandler:  ErrorHandler(opts.Log),
	})
	app.Use(RequestLogger(opts.Log, opts.Metrics))
	app.Use(recover.New())
	return app
}

// ErrorHandler responde JSON bajo /api y una página de error en el resto.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Ocurrió un error inesperado."
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
			msg = "Ocurrió un error inesperado."
		}
		if code == fiber.StatusNotFound {
			msg = "La página solicitada no existe."
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(code).JSON(dto.ErrorResponse{Code: strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(code), " ", "_")), Message: msg})
		}
		return c.Status(code).Render("errors/error", fiber.Map{
			"Title":   utils.StatusMessage(code),
			"Code":    code,
			"Message": msg,
		}, publicLayout)
	}
}
