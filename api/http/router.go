package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pharmalink/cv/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	authMW fiber.Handler,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	profile *handlers.ProfileHandler,
	cvs *handlers.CVHandler,
	preview *handlers.PreviewHandler,
	export *handlers.ExportHandler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	p := v1.Group("/profile", authMW)
	p.Get("/", profile.Get)
	p.Put("/", profile.Put)

	g := v1.Group("/cvs", authMW)
	g.Post("/", cvs.Create)
	g.Get("/", cvs.List)
	g.Post("/prefill", cvs.Prefill)
	g.Get("/:id", cvs.Get)
	g.Put("/:id", cvs.Update)
	g.Delete("/:id", cvs.Delete)
	g.Get("/:id/preview", preview.Preview)
	g.Get("/:id/completeness", preview.Completeness)
	g.Get("/:id/export", export.HTML)
	g.Post("/:id/export/pdf", export.PDF)
}
