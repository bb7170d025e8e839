package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/subvault/billing-backend/internal/config"
	"github.com/subvault/billing-backend/internal/handlers"
	"github.com/subvault/billing-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	catalogHandler *handlers.CatalogHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	invoiceHandler *handlers.InvoiceHandler,
	paymentHandler *handlers.PaymentHandler,
	couponHandler *handlers.CouponHandler,
	purchaseHandler *handlers.PurchaseHandler,
	webhookHandler *handlers.WebhookHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Storefront catalog (public)
	api.Get("/plans", catalogHandler.ListPlans)
	api.Get("/products", catalogHandler.ListProducts)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Subscriptions — reads are ownership-scoped in the service; creation
	// and status changes are staff actions.
	jwt := middleware.JWTProtected(cfg)
	staff := middleware.StaffRequired()
	api.Get("/subscriptions", jwt, subscriptionHandler.List)
	api.Get("/subscriptions/:id", jwt, subscriptionHandler.Get)
	api.Post("/subscriptions", jwt, staff, subscriptionHandler.Create)
	api.Put("/subscriptions/:id/status", jwt, staff, subscriptionHandler.UpdateStatus)

	// Invoices
	api.Get("/invoices", jwt, invoiceHandler.List)
	api.Get("/invoices/:id", jwt, invoiceHandler.Get)
	api.Post("/invoices/generate", jwt, staff, invoiceHandler.Generate)
	api.Put("/invoices/:id/status", jwt, staff, invoiceHandler.UpdateStatus)

	// Payments
	api.Get("/payments", jwt, paymentHandler.List)
	api.Post("/payments", jwt, paymentHandler.Create)

	// Coupons (customer-facing)
	api.Post("/coupons/validate", jwt, couponHandler.Validate)
	api.Get("/coupons/available", jwt, couponHandler.Available)

	// Self-service checkout
	api.Post("/purchase", jwt, purchaseHandler.Purchase)

	// Admin billing settings
	admin := api.Group("/admin", jwt, middleware.AdminRequired(db, cfg))
	admin.Get("/settings", settingsHandler.GetAll)
	admin.Put("/settings/:key", settingsHandler.SetKey)
	admin.Delete("/settings/:key", settingsHandler.DeleteKey)

	// Payment gateway webhook (token auth, no JWT)
	webhooks := api.Group("/webhooks")
	webhooks.Post("/gateway", webhookHandler.HandleGateway)
}
