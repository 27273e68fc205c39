package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"preben-prepper/internal/api/handlers"
	"preben-prepper/internal/api/presenters"
	"preben-prepper/internal/api/routes"
	"preben-prepper/internal/middleware"
	"preben-prepper/internal/utils"
	"preben-prepper/internal/utils/mailing"
	"preben-prepper/internal/utils/storage"
	"preben-prepper/pkg/access"
	"preben-prepper/pkg/events"
	"preben-prepper/pkg/home"
	"preben-prepper/pkg/inventory"
	"preben-prepper/pkg/jwt"
	"preben-prepper/pkg/recommendation"
	"preben-prepper/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not configured")

// Dependencies are the outside-world collaborators of the app. Tests swap
// them for fakes; DefaultDependencies builds them from config.
type Dependencies struct {
	JWTService     jwt.JWTService
	S3             storage.AwsS3
	Mailer         mailing.Mailer
	Publisher      events.Publisher
	LimiterStorage fiber.Storage
}

func DefaultDependencies(log *logrus.Logger) (Dependencies, error) {
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return Dependencies{}, ErrMissingJWTSecret
	}

	publishTimeout := utils.GetConfigDuration("RABBITMQ_PUBLISH_TIMEOUT", events.DefaultPublishTimeout)

	deps := Dependencies{
		JWTService: jwt.NewJWTService(secret, utils.GetConfigDuration("JWT_EXPIRES_IN", 7*24*time.Hour)),
		S3:         storage.NewAwsS3(log),
		Mailer:     mailing.NewMailer(mailing.LoadMailConfig()),
		Publisher:  events.NewPublisher(utils.GetConfig("RABBITMQ_URL"), publishTimeout),
	}

	if client := storage.NewRedisClient(); client != nil {
		deps.LimiterStorage = storage.NewRedisStorage(client, "prepper:limiter:")
		log.Info("rate limiter using redis storage")
	} else if utils.GetConfig("REDIS_ADDR") != "" {
		log.Warn("redis unreachable, rate limiter falls back to memory")
	}
	return deps, nil
}

func NewApp(db *gorm.DB, log *logrus.Logger) (*fiber.App, error) {
	deps, err := DefaultDependencies(log)
	if err != nil {
		return nil, err
	}
	return NewAppWith(db, log, deps)
}

func NewAppWith(db *gorm.DB, log *logrus.Logger, deps Dependencies) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:      "preben-prepper",
		ErrorHandler: errorHandler(log),
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging, metrics and limiter
	out, err := requestLogOutput(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     out,
	}))
	app.Use(middleware.Metrics())

	var authLimiter fiber.Handler
	if utils.GetConfigBool("RATE_LIMIT_ENABLED") {
		window := utils.GetConfigDuration("RATE_LIMIT_WINDOW", 15*time.Minute)
		app.Use("/api", limiter.New(limiter.Config{
			Max:          utils.GetConfigInt("RATE_LIMIT_MAX", 100),
			Expiration:   window,
			Storage:      deps.LimiterStorage,
			LimitReached: limitReached,
		}))
		authLimiter = limiter.New(limiter.Config{
			Max:          utils.GetConfigInt("AUTH_RATE_LIMIT_MAX", 5),
			Expiration:   window,
			Storage:      deps.LimiterStorage,
			KeyGenerator: func(c *fiber.Ctx) string { return "auth:" + c.IP() },
			LimitReached: limitReached,
		})
	}

	// Repository
	accessRepository := access.NewAccessRepository(db)
	userRepository := user.NewUserRepository(db)
	homeRepository := home.NewHomeRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	recommendationRepository := recommendation.NewRecommendationRepository(db)

	// Service
	accessService := access.NewAccessService(accessRepository)
	userService := user.NewUserService(userRepository, deps.JWTService, accessService)
	homeService := home.NewHomeService(homeRepository, accessService, deps.S3, log)
	inventoryService := inventory.NewInventoryService(inventoryRepository, accessService, deps.S3, log)
	recommendationService := recommendation.NewRecommendationService(recommendationRepository, inventoryRepository, accessService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	homeHandler := handlers.NewHomeHandler(homeService, accessService, deps.Mailer, deps.Publisher, log, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, deps.Publisher, log, validator)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, deps.Publisher, log, validator)
	healthHandler := handlers.NewHealthHandler(time.Now())

	// routes
	routesConfig := routes.Config{
		App:                   app,
		UserHandler:           userHandler,
		HomeHandler:           homeHandler,
		InventoryHandler:      inventoryHandler,
		RecommendationHandler: recommendationHandler,
		HealthHandler:         healthHandler,
		Middleware:            middlewares,
		JWTService:            deps.JWTService,
		AuthLimiter:           authLimiter,
	}
	routesConfig.Setup()
	return app, nil
}

// requestLogOutput tees request logs to stdout and, when path is set, to an
// append-only file.
func requestLogOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return io.MultiWriter(os.Stdout, file), nil
}

func limitReached(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(presenters.Response{
		Status:  false,
		Message: "too many requests, please try again later",
	})
}

func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}
		return c.Status(code).JSON(presenters.Response{
			Status:  false,
			Message: "internal server error",
			Error:   err.Error(),
		})
	}
}
