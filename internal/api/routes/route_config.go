package routes

import (
	"fmt"

	"preben-prepper/domain"
	"preben-prepper/internal/api/handlers"
	"preben-prepper/internal/middleware"
	"preben-prepper/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                   *fiber.App
	UserHandler           handlers.UserHandler
	HomeHandler           handlers.HomeHandler
	InventoryHandler      handlers.InventoryHandler
	RecommendationHandler handlers.RecommendationHandler
	HealthHandler         handlers.HealthHandler
	Middleware            middleware.Middleware
	JWTService            jwt.JWTService
	// AuthLimiter guards register and login; nil disables it.
	AuthLimiter fiber.Handler
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Home()
	c.Inventory()
	c.Recommendation()
	c.Admin()
	c.NotFound()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/health", c.HealthHandler.Health)
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	limit := c.AuthLimiter
	if limit == nil {
		limit = func(ctx *fiber.Ctx) error { return ctx.Next() }
	}
	{
		auth.Post("/register", limit, c.UserHandler.Register)
		auth.Post("/login", limit, c.UserHandler.Login)
		auth.Post("/refresh", c.auth(), c.UserHandler.RefreshToken)
		auth.Get("/me", c.auth(), c.UserHandler.Me)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/users")
	{
		user.Get("/", c.auth(), c.UserHandler.GetUsers)
		user.Get("/:id", c.auth(), c.UserHandler.GetUser)
		user.Post("/", c.UserHandler.CreateUser)
		user.Put("/:id", c.auth(), c.UserHandler.UpdateUser)
		user.Delete("/:id", c.auth(), c.UserHandler.DeleteUser)
	}
}

func (c *Config) Home() {
	home := c.App.Group("/api/homes", c.auth())
	{
		home.Get("/", c.HomeHandler.GetHomes)
		home.Get("/:id", c.HomeHandler.GetHome)
		home.Post("/", c.HomeHandler.CreateHome)
		home.Put("/:id", c.HomeHandler.UpdateHome)
		home.Delete("/:id", c.HomeHandler.DeleteHome)

		home.Post("/:id/access", c.HomeHandler.GrantAccess)
		home.Put("/:id/access/:userId", c.HomeHandler.UpdateAccess)
		home.Delete("/:id/access/:userId", c.HomeHandler.RevokeAccess)
	}
}

func (c *Config) Inventory() {
	inventory := c.App.Group("/api/home/:homeId/inventory", c.auth())
	{
		inventory.Get("/", c.InventoryHandler.GetInventoryItems)
		inventory.Get("/expiring", c.InventoryHandler.GetExpiringItems)
		inventory.Get("/stats", c.InventoryHandler.GetInventoryStats)
		inventory.Get("/:id", c.InventoryHandler.GetInventoryItem)
		inventory.Post("/", c.InventoryHandler.AddInventoryItem)
		inventory.Put("/:id", c.InventoryHandler.UpdateInventoryItem)
		inventory.Delete("/:id", c.InventoryHandler.DeleteInventoryItem)
		inventory.Post("/:id/image", c.InventoryHandler.UploadItemImage)
	}
}

func (c *Config) Recommendation() {
	rec := c.App.Group("/api/recommended-inventory")
	{
		rec.Get("/", c.auth(), c.RecommendationHandler.GetRecommendedItems)
		rec.Get("/coverage", c.Middleware.OptionalAuth(c.JWTService), c.RecommendationHandler.GetCoverage)
		rec.Post("/:id/create-inventory", c.auth(), c.RecommendationHandler.CreateInventoryFromRecommendation)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/admin/recommended-inventory", c.auth(), c.Middleware.RequireRole(domain.RoleAdmin))
	{
		admin.Get("/", c.RecommendationHandler.GetAllRecommendedItems)
		admin.Get("/:id", c.RecommendationHandler.GetRecommendedItem)
		admin.Post("/", c.RecommendationHandler.CreateRecommendedItem)
		admin.Put("/:id", c.RecommendationHandler.UpdateRecommendedItem)
		admin.Delete("/:id", c.RecommendationHandler.DeleteRecommendedItem)
	}
}

// NotFound must be registered last.
func (c *Config) NotFound() {
	c.App.Use(func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  false,
			"message": fmt.Sprintf("Route %s not found", ctx.OriginalURL()),
		})
	})
}
