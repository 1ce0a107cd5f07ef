// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"jordanmarket/internal/delivery/http/middleware"
	"jordanmarket/internal/delivery/http/router/handler"
	"jordanmarket/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middlewares, injected by Fx.
type RouterParams struct {
	fx.In

	AccountHandler      *handler.AccountHandler
	CatalogHandler      *handler.CatalogHandler
	CartHandler         *handler.CartHandler
	OrderHandler        *handler.OrderHandler
	DriverHandler       *handler.DriverHandler
	WalletHandler       *handler.WalletHandler
	AdminHandler        *handler.AdminHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimit           *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params
	authenticate := p.AuthMiddleware.Authenticate

	e.GET("/health", handler.HealthCheck)

	// Identity and capability onboarding
	authGroup := e.Group("/auth", p.RateLimit.Limit("auth"))
	{
		authGroup.POST("/register", p.AccountHandler.Register)
		authGroup.POST("/login", p.AccountHandler.Login)
		authGroup.POST("/refresh", p.AccountHandler.Refresh)
	}

	profileGroup := e.Group("/profile", authenticate)
	{
		profileGroup.GET("", p.AccountHandler.GetProfile)
		profileGroup.POST("/apply/seller", p.AccountHandler.ApplySeller)
		profileGroup.POST("/apply/driver", p.AccountHandler.ApplyDriver)
	}

	// Public storefront
	e.GET("/products", p.CatalogHandler.ListProducts)
	e.GET("/products/:id", p.CatalogHandler.GetProduct)

	// Buyer-side cart and orders
	cartGroup := e.Group("/cart", authenticate)
	{
		cartGroup.GET("", p.CartHandler.GetCart)
		cartGroup.POST("/items", p.CartHandler.AddItem)
		cartGroup.PATCH("/items/:productID", p.CartHandler.UpdateItem)
		cartGroup.DELETE("", p.CartHandler.Clear)
	}

	orderGroup := e.Group("/orders", authenticate)
	{
		orderGroup.POST("/checkout", p.OrderHandler.Checkout, p.RateLimit.Limit("checkout"))
		orderGroup.GET("", p.OrderHandler.ListMyOrders)
		orderGroup.GET("/:id", p.OrderHandler.GetOrder)
		orderGroup.POST("/:id/cancel", p.OrderHandler.CancelOrder)
	}

	// Seller console
	sellerGroup := e.Group("/seller", authenticate, p.AuthMiddleware.RequireRole(entity.RoleSeller))
	{
		sellerGroup.GET("/products", p.CatalogHandler.ListMyProducts)
		sellerGroup.POST("/products", p.CatalogHandler.CreateProduct)
		sellerGroup.PATCH("/products/:id", p.CatalogHandler.UpdateProduct)
		sellerGroup.PATCH("/products/:id/active", p.CatalogHandler.SetProductActive)
		sellerGroup.GET("/orders", p.OrderHandler.ListSellerOrders)
		sellerGroup.POST("/orders/:id/advance", p.OrderHandler.AdvanceOrder)
	}

	// Driver console
	driverGroup := e.Group("/driver", authenticate, p.AuthMiddleware.RequireRole(entity.RoleDriver))
	{
		driverGroup.GET("/deliveries/available", p.DriverHandler.ListAvailableDeliveries)
		driverGroup.GET("/deliveries", p.DriverHandler.ListMyDeliveries)
		driverGroup.POST("/deliveries/:id/accept", p.DriverHandler.AcceptDelivery)
		driverGroup.POST("/deliveries/:id/pickup", p.DriverHandler.MarkPickedUp)
		driverGroup.POST("/deliveries/:id/complete", p.DriverHandler.CompleteDelivery)
		driverGroup.GET("/cash", p.DriverHandler.ListMyCashCollections)
		driverGroup.POST("/cash/:id/collect", p.DriverHandler.MarkCashCollected)
	}

	// QANZ wallet
	walletGroup := e.Group("/wallet", authenticate)
	{
		walletGroup.GET("", p.WalletHandler.GetBalance)
		walletGroup.GET("/transactions", p.WalletHandler.ListTransactions)
		walletGroup.POST("/redeem", p.WalletHandler.RedeemCode, p.RateLimit.Limit("redeem"))
	}

	// Notifications
	notificationGroup := e.Group("/notifications", authenticate)
	{
		notificationGroup.GET("", p.NotificationHandler.ListNotifications)
		notificationGroup.GET("/unread-count", p.NotificationHandler.CountUnread)
		notificationGroup.POST("/:id/read", p.NotificationHandler.MarkRead)
		notificationGroup.POST("/read-all", p.NotificationHandler.MarkAllRead)
	}

	// Admin console
	adminGroup := e.Group("/admin", authenticate, p.AuthMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/users", p.AdminHandler.ListUsers)
		adminGroup.POST("/users/:id/verify-seller", p.AdminHandler.VerifySeller)
		adminGroup.POST("/users/:id/verify-driver", p.AdminHandler.VerifyDriver)
		adminGroup.GET("/cash", p.AdminHandler.ListCashCollections)
		adminGroup.GET("/cash/summary", p.AdminHandler.CashSummary)
		adminGroup.POST("/cash/:id/confirm", p.AdminHandler.ConfirmCashReceipt)
		adminGroup.POST("/topup-codes", p.AdminHandler.IssueTopupCode)
		adminGroup.GET("/topup-codes", p.AdminHandler.ListTopupCodes)
	}
}
