package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"pdfapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db may be nil when the service runs without persistence.
func RegisterRoutes(app *fiber.App, db *sql.DB, pdfSvc service.PDFService, textSvc service.TextService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	pdfGroup := app.Group("/pdf")
	pdfGroup.Post("/merge", MergePDF(pdfSvc))
	pdfGroup.Post("/split", SplitPDF(pdfSvc))
	pdfGroup.Post("/rotate", RotatePDF(pdfSvc))
	pdfGroup.Post("/watermark", WatermarkPDF(pdfSvc))
	pdfGroup.Post("/protect", ProtectPDF(pdfSvc))

	textGroup := app.Group("/text")
	textGroup.Post("/summarize", Summarize(textSvc))
	textGroup.Post("/generate", Generate(textSvc))

	app.Get("/outputs", ListOutputs(pdfSvc))
	app.Get("/outputs/:name", GetOutput(pdfSvc))
	app.Get("/outputs/:name/link", OutputLink(pdfSvc))
}

// HealthCheck godoc
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is the simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
