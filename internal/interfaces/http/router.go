package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/application/actions"
	"github.com/jhoicas/rentalops/internal/domain/access"
	"github.com/jhoicas/rentalops/pkg/logger"
	"github.com/jhoicas/rentalops/pkg/metrics"
)

// RateLimitSettings límite de intentos de login por IP.
type RateLimitSettings struct {
	PerMinute int
	Burst     int
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth       Authenticator
	Actions    *actions.Actions
	Cookie     CookieSettings
	LoginLimit RateLimitSettings
	Metrics    *metrics.Metrics
	Log        *logger.Logger
	// Done detiene la limpieza del rate limiter (nil = vive con el proceso).
	Done <-chan struct{}
}

// Router registra las páginas, las secciones protegidas y la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app.Use(LoadSession(deps.Auth, deps.Cookie.Name))

	// Públicas
	home := NewHomeHandler(deps.Cookie)
	authHandler := NewAuthHandler(deps.Auth, deps.Cookie, deps.Log)
	app.Get("/", home.Landing)
	app.Get(access.LoginPath, authHandler.LoginPage)
	app.Post(access.LoginPath, RateLimit(deps.LoginLimit.PerMinute, deps.LoginLimit.Burst, deps.Log, authHandler.LoginLimited, deps.Done), authHandler.LoginSubmit)
	app.Post("/logout", authHandler.Logout)

	reg := access.Default()
	section := func(key string) fiber.Router {
		s, _ := reg.SectionByKey(key)
		return app.Group(s.Prefix, RequireSection(s, deps.Metrics))
	}
	dashboards := NewDashboardHandler(deps.Actions)
	rentals := NewRentalHandler(deps.Actions)
	orders := NewPurchaseOrderHandler(deps.Actions)

	// Especialista de equipos
	es := section(access.SectionES)
	es.Get("/dashboard", dashboards.ES)
	es.Get("/rentals", rentals.MyRentals)
	es.Get("/rentals/new", rentals.NewForm)
	es.Post("/rentals", rentals.Create)
	es.Get("/rentals/:id", rentals.MyRentalDetail)
	es.Post("/rentals/:id/cancel", rentals.Cancel)

	// Coordinación de rentas
	rc := section(access.SectionRC)
	rc.Get("/dashboard", dashboards.RC)
	rc.Get("/rentals", rentals.Queue)
	rc.Get("/rentals/:id", rentals.QueueDetail)
	rc.Get("/purchase-orders", orders.RCList)
	rc.Get("/purchase-orders/new", orders.NewForm)
	rc.Post("/purchase-orders", orders.Create)

	// Finanzas
	fin := section(access.SectionFIN)
	fin.Get("/dashboard", dashboards.FIN)
	fin.Get("/purchase-orders", orders.FINList)
	fin.Get("/purchase-orders/:id", orders.Detail)
	fin.Post("/purchase-orders/:id/approve", orders.Approve)
	fin.Post("/purchase-orders/:id/reject", orders.Reject)
	fin.Get("/purchase-orders/:id/pdf", orders.PDF)

	// Gerencia
	mgr := section(access.SectionManager)
	mgr.Get("/dashboard", dashboards.Manager)
	mgr.Get("/reports", dashboards.ManagerReports)
	mgr.Get("/config", dashboards.ManagerConfig)

	// API JSON
	api := app.Group("/api")
	api.Post("/auth/login", RateLimit(deps.LoginLimit.PerMinute, deps.LoginLimit.Burst, deps.Log, nil, deps.Done), authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.Auth, deps.Cookie.Name))
	refs := NewReferenceHandler(deps.Actions)
	reference := protected.Group("/reference", RequireRole(access.AllRoles()...))
	reference.Get("/districts", refs.Districts)
	reference.Get("/commodity-codes", refs.CommodityCodes)
}
