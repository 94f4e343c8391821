package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"github.com/orbislink/agrilink-api/internal/application/auth"
	"github.com/orbislink/agrilink-api/internal/application/usecase"
	"github.com/orbislink/agrilink-api/internal/domain/order"
	infraai "github.com/orbislink/agrilink-api/internal/infrastructure/ai"
	"github.com/orbislink/agrilink-api/internal/infrastructure/mail"
	infrapdf "github.com/orbislink/agrilink-api/internal/infrastructure/pdf"
	"github.com/orbislink/agrilink-api/internal/infrastructure/postgres"
	"github.com/orbislink/agrilink-api/internal/infrastructure/push"
	httpRouter "github.com/orbislink/agrilink-api/internal/interfaces/http"
	"github.com/orbislink/agrilink-api/pkg/config"
	"github.com/orbislink/agrilink-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("a iniciar aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("ligação ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	otpRepo := postgres.NewOTPRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	subsRepo := postgres.NewPushSubscriptionRepository(pool)
	marketRepo := postgres.NewMarketRepository(pool)
	supportRepo := postgres.NewSupportMessageRepository(pool)
	sessionRepo := postgres.NewWorkSessionRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailSender := mail.NewGomailSender(cfg.SMTP, cfg.OTP)
	pushSender := push.NewWebPushSender(cfg.Push)
	llmService := infraai.NewGatewayService(cfg.AI)
	receiptGen := infrapdf.NewMarotoReceiptGenerator()

	hub := httpRouter.NewNotificationHub(log)

	rules := order.Rules{
		MinTotalKz:         decimal.NewFromInt(cfg.Orders.MinTotalKz),
		DeliveryWindowDays: cfg.Orders.DeliveryWindowDays,
		CancelWindow:       time.Duration(cfg.Orders.CancelWindowHours) * time.Hour,
	}

	authUC := auth.NewAuthUseCase(userRepo, otpRepo, sessionRepo, mailSender, cfg.JWT, cfg.OTP, log)
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	orderUC := usecase.NewOrderUseCase(
		orderRepo, productRepo, userRepo, subsRepo,
		txRunner, pushSender, hub, receiptGen, rules, log,
	)
	pushUC := usecase.NewPushUseCase(subsRepo, pushSender, cfg.Push, log)
	marketUC := usecase.NewMarketUseCase(marketRepo, llmService)
	supportUC := usecase.NewSupportUseCase(supportRepo, log)
	sessionUC := usecase.NewWorkSessionUseCase(sessionRepo)
	notificationUC := usecase.NewNotificationUseCase(notifRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgriLink API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", httpRouter.MetricsHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		ProductUC:      productUC,
		OrderUC:        orderUC,
		PushUC:         pushUC,
		MarketUC:       marketUC,
		SupportUC:      supportUC,
		SessionUC:      sessionUC,
		NotificationUC: notificationUC,
		Hub:            hub,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP terminado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de paragem recebido, a encerrar servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
