package main

import (
	"log"
	"strings"

	"propman-backend/internal/agreement"
	"propman-backend/internal/auth"
	"propman-backend/internal/config"
	"propman-backend/internal/database"
	"propman-backend/internal/document"
	"propman-backend/internal/metrics"
	"propman-backend/internal/models"
	"propman-backend/internal/notification"
	"propman-backend/internal/property"
	"propman-backend/internal/tenant"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	store := document.NewStore(cfg.UploadDir)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"detail": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Uploaded documents, read-only, keyed by generated storage name
	app.Static("/uploads", cfg.UploadDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	api := app.Group("/api/v1")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler())
	api.Post("/auth/register", auth.RegisterHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Get("/auth/users", auth.RequireRole(models.RoleAdmin), auth.ListUsersHandler())

	// Properties
	protected.Get("/properties", property.ListPropertiesHandler())
	protected.Post("/properties", property.CreatePropertyHandler())
	protected.Get("/properties/:id", property.GetPropertyHandler())
	protected.Put("/properties/:id", property.UpdatePropertyHandler())
	protected.Delete("/properties/:id", property.DeletePropertyHandler())

	// Tenants
	protected.Get("/tenants", tenant.ListTenantsHandler())
	protected.Post("/tenants", tenant.CreateTenantHandler())
	protected.Get("/tenants/:id", tenant.GetTenantHandler())
	protected.Put("/tenants/:id", tenant.UpdateTenantHandler())
	protected.Delete("/tenants/:id", tenant.DeleteTenantHandler())

	// Rental agreements (expiring-soon before :id, routes match in order)
	protected.Get("/rental-agreements/expiring-soon", agreement.ExpiringSoonHandler(cfg))
	protected.Get("/rental-agreements", agreement.ListAgreementsHandler())
	protected.Post("/rental-agreements", agreement.CreateAgreementHandler())
	protected.Get("/rental-agreements/:id", agreement.GetAgreementHandler())
	protected.Put("/rental-agreements/:id", agreement.UpdateAgreementHandler())
	protected.Post("/rental-agreements/:id/sign", agreement.SignAgreementHandler())

	// Documents
	protected.Get("/documents", document.ListDocumentsHandler())
	protected.Post("/documents/upload", document.UploadDocumentHandler(cfg, store))
	protected.Get("/documents/:id", document.GetDocumentHandler())
	protected.Delete("/documents/:id", document.DeleteDocumentHandler(store))

	// Notifications
	protected.Get("/notifications", notification.ListNotificationsHandler())
	protected.Get("/notifications/unread", notification.UnreadCountHandler())
	protected.Post("/notifications/mark-all-read", notification.MarkAllReadHandler())
	protected.Post("/notifications/:id/read", notification.MarkReadHandler())
	protected.Delete("/notifications/:id", notification.DeleteNotificationHandler())

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
