package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orbislink/agrilink-api/internal/application/auth"
	"github.com/orbislink/agrilink-api/internal/application/usecase"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	OrderUC        *usecase.OrderUseCase
	PushUC         *usecase.PushUseCase
	MarketUC       *usecase.MarketUseCase
	SupportUC      *usecase.SupportUseCase
	SessionUC      *usecase.WorkSessionUseCase
	NotificationUC *usecase.NotificationUseCase
	Hub            *NotificationHub
	JWTSecret      string
}

// Router regista as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/password/reset", authHandler.RequestPasswordReset)
	authGroup.Post("/password/confirm", authHandler.ConfirmPasswordReset)

	// Locales (público, tabelas estáticas)
	locales := api.Group("/locales")
	localeHandler := NewLocaleHandler()
	locales.Get("/countries", localeHandler.Countries)
	locales.Get("/:country/provinces", localeHandler.Provinces)
	locales.Get("/:country/provinces/:province/municipalities", localeHandler.Municipalities)

	// Suporte (público)
	supportHandler := NewSupportHandler(deps.SupportUC)
	api.Post("/support/messages", supportHandler.Submit)

	// Catálogo: leitura pública, escrita de agricultor
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/products", productHandler.List)

	// Chave VAPID (público; necessária antes do login para o service worker)
	pushHandler := NewPushHandler(deps.PushUC)
	api.Get("/push/vapid-key", pushHandler.VAPIDKey)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/otp/request", authHandler.RequestOTP)
	protected.Post("/auth/otp/verify", authHandler.VerifyOTP)

	// Perfil
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/me", userHandler.Me)
	protected.Put("/users/me", userHandler.UpdateMe)

	// Catálogo (escrita restrita a agricultores)
	protected.Get("/products/mine", RequireRole(entity.RoleAgricultor), productHandler.ListMine)
	protected.Post("/products", RequireRole(entity.RoleAgricultor), productHandler.Create)
	api.Get("/products/:id", productHandler.GetByID)

	// Encomendas
	orderHandler := NewOrderHandler(deps.OrderUC)
	protected.Post("/orders", RequireRole(entity.RoleComprador), orderHandler.Place)
	protected.Get("/orders", orderHandler.List)
	protected.Post("/orders/:id/cancel", RequireRole(entity.RoleComprador), orderHandler.Cancel)
	protected.Put("/orders/:id/status", RequireRole(entity.RoleAgricultor), orderHandler.UpdateStatus)
	protected.Get("/orders/:id/receipt", RequireRole(entity.RoleComprador), orderHandler.Receipt)

	// Push
	protected.Post("/push/subscriptions", pushHandler.Subscribe)
	protected.Delete("/push/subscriptions", pushHandler.Unsubscribe)
	protected.Post("/push/send", RequireRole(entity.RoleAdmin), pushHandler.Send)

	// Mercado
	marketHandler := NewMarketHandler(deps.MarketUC)
	protected.Get("/market/stats", marketHandler.Stats)
	protected.Post("/market/analysis", marketHandler.Analysis)

	// Sessões de trabalho (agentes)
	sessionHandler := NewSessionHandler(deps.SessionUC)
	protected.Post("/sessions/end", RequireRole(entity.RoleAgente), sessionHandler.End)
	protected.Post("/sessions/beacon", RequireRole(entity.RoleAgente), sessionHandler.Beacon)
	protected.Get("/sessions/active", RequireRole(entity.RoleAgente), sessionHandler.Active)
	protected.Get("/sessions/stats", RequireRole(entity.RoleAgente, entity.RoleAdmin), sessionHandler.Stats)

	// Notificações
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	protected.Get("/notifications", notificationHandler.List)
	protected.Get("/notifications/unread-count", notificationHandler.UnreadCount)
	protected.Post("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.Post("/notifications/:id/read", notificationHandler.MarkRead)

	// Canal realtime de invalidação do contador de não lidas
	app.Get("/ws/notifications", WSUpgradeMiddleware(deps.JWTSecret), WSHandler(deps.Hub))
}
