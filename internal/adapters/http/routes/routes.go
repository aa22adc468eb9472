package routes

import (
	"pichincha-tarjetas/internal/adapters/http/handlers"
	"pichincha-tarjetas/internal/adapters/persistence/repositories"
	"pichincha-tarjetas/internal/config"
	"pichincha-tarjetas/internal/core/cardgen"
	"pichincha-tarjetas/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Setup configures all routes and wires the dependency graph
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *logrus.Logger) *services.CardService {
	// Repositories
	cardRepo := repositories.NewCardRepository(db)

	// Services
	generator := cardgen.NewSecureGenerator(cfg.CardBIN)
	cardService := services.NewCardService(cardRepo, generator, log)

	// Handlers
	healthHandler := handlers.NewHealthHandler(cardRepo)
	cardHandler := handlers.NewCardHandler(cardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupCardRoutes(apiV1, cardHandler)

	return cardService
}

// setupCardRoutes configures the debit card routes
func setupCardRoutes(router fiber.Router, h *handlers.CardHandler) {
	cards := router.Group("/tarjetas-debito")

	cards.Post("/", h.Create)
	cards.Get("/", h.List)

	// fixed segments go before the parameterized ones
	cards.Get("/buscar", h.Search)
	cards.Get("/proximas-vencer", h.ListExpiringSoon)
	cards.Put("/actualizar-vencidas", h.SweepExpired)
	cards.Get("/numero/:numero", h.GetByNumber)
	cards.Get("/cedula/:cedula", h.ListByNationalID)
	cards.Get("/activas/cedula/:cedula", h.ListActiveByNationalID)
	cards.Get("/estado/:estado", h.ListByStatus)
	cards.Get("/tipo/:tipo", h.ListByType)
	cards.Get("/contar/estado/:estado", h.CountByStatus)

	cards.Get("/:id", h.GetByID)
	cards.Put("/:id", h.Update)
	cards.Delete("/:id", h.Delete)
	cards.Put("/:id/bloquear", h.Block)
	cards.Put("/:id/desbloquear", h.Unblock)
	cards.Put("/:id/suspender", h.Suspend)
	cards.Put("/:id/reactivar", h.Reactivate)
	cards.Put("/:id/cancelar", h.Cancel)
}
