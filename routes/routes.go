package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"canteen/configs"
	"canteen/controllers"
	"canteen/middlewares"
	"canteen/pkg/locker"
	"canteen/repository"
	"canteen/services"
	"canteen/utils"
	"canteen/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, pub services.EventPublisher, hub *ws.OrderHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	tm := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	locks := locker.New()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, tm, cfg.QueryTimeout)
	menuSvc := services.NewMenuService(menuRepo, cfg.QueryTimeout)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo, locks, cfg.QueryTimeout)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, locks, cfg.QueryTimeout, pub, hub)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)

	api := r.Group("/api")

	// Auth
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(tm), authCtrl.Me)
	}

	// Menu (public)
	api.GET("/menu", menuCtrl.List)

	// Cart
	cart := api.Group("/cart", middlewares.AuthMiddleware(tm))
	{
		cart.POST("", cartCtrl.Add)
		cart.GET("", cartCtrl.List)
		cart.PUT("/update", cartCtrl.UpdateQuantity)
		cart.DELETE("/:id", cartCtrl.Remove)
	}

	// Orders
	orders := api.Group("/orders", middlewares.AuthMiddleware(tm))
	{
		orders.POST("", orderCtrl.Place)
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Detail)
	}

	// Staff live order feed
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(tm, "staff"), hub.HandleWebSocket)
}
