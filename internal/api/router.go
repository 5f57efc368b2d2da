package api

import (
	"cardmax/docs"
	"cardmax/internal/api/handlers"
	"cardmax/pkg/auth"
	"cardmax/pkg/config"
	"cardmax/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth           *handlers.AuthHandler
	Card           *handlers.CardHandler
	Wallet         *handlers.WalletHandler
	Recommendation *handlers.RecommendationHandler
	Model          *handlers.ModelHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	cfg *config.ServerConfig,
	gatherer prometheus.Gatherer,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // registers the swagger document
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to " + docs.SwaggerInfo.Title,
			"name":    docs.SwaggerInfo.Title,
			"version": docs.SwaggerInfo.Version,
			"docs":    "/swagger/index.html",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	requireAuth := middleware.AuthMiddleware(jwtManager, appLogger)
	requireSuperuser := middleware.RequireSuperuser(appLogger)

	v1 := app.Group("/api/v1")

	// Public API
	v1.Get("/cards", h.Card.ListCards)
	v1.Post("/optimize", h.Recommendation.Optimize)
	v1.Post("/categories/predict", h.Model.PredictCategory)

	// Authenticated API
	v1.Post("/recommendations", requireAuth, h.Recommendation.Recommend)
	v1.Post("/recommendations/advice", requireAuth, h.Recommendation.Advice)
	v1.Get("/transactions", requireAuth, h.Recommendation.ListTransactions)

	wallet := v1.Group("/wallet", requireAuth)
	wallet.Get("", h.Wallet.GetWallet)
	wallet.Post("/:cardId", h.Wallet.AddCard)
	wallet.Delete("/:cardId", h.Wallet.RemoveCard)

	// Superuser API
	v1.Post("/cards", requireAuth, requireSuperuser, h.Card.CreateCard)

	modelsGroup := v1.Group("/models", requireAuth, requireSuperuser)
	modelsGroup.Post("/classifier/train", h.Model.TrainClassifier)
	modelsGroup.Post("/classifier/retrain", h.Model.RetrainClassifier)
	modelsGroup.Post("/save", h.Model.SaveModels)

	return app
}
