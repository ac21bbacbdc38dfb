package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tienda/shophub/internal/config"
	"tienda/shophub/internal/handler/middleware"
	"tienda/shophub/internal/repository"
	jwtpkg "tienda/shophub/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	userRepo repository.UserRepository,
	authHandler *AuthHandler,
	adminHandler *AdminHandler,
	productHandler *ProductHandler,
	orderHandler *OrderHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Authenticated requests carry a bearer token resolved to a live user
	// row before any handler runs.
	authed := []gin.HandlerFunc{
		middleware.JWTAuth(jwtManager),
		middleware.Identity(userRepo),
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		protected := auth.Group("", authed...)
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
			protected.PATCH("/update", authHandler.Update)
			protected.DELETE("/delete/:id", authHandler.Delete)
			protected.GET("/get_user/:id", authHandler.GetUser)
			protected.GET("/get_all_users", authHandler.ListUsers)
		}
	}

	admin := r.Group("/admin", authed...)
	{
		admin.GET("/get_user/:id", adminHandler.GetUser)
		admin.GET("/get_all_users", adminHandler.ListUsers)
		admin.PATCH("/change_role/:id", adminHandler.ChangeRole)
		admin.DELETE("/delete/:id", adminHandler.DeleteUser)
	}

	products := r.Group("/products", authed...)
	{
		products.GET("/products", productHandler.ListProducts)
		products.GET("/products/:id", productHandler.GetProduct)
		products.POST("/products", productHandler.CreateProduct)
		products.PATCH("/products/:id", productHandler.UpdateProduct)
		products.DELETE("/products/:id", productHandler.DeleteProduct)

		products.GET("/categories", productHandler.ListCategories)
		products.GET("/categories/:id/products", productHandler.ListCategoryProducts)
		products.POST("/categories", productHandler.CreateCategory)
		products.DELETE("/categories/:id", productHandler.DeleteCategory)
	}

	ventas := r.Group("/ventas", authed...)
	{
		ventas.POST("/orders", orderHandler.Create)
		ventas.GET("/orders", orderHandler.List)
		ventas.GET("/orders/:id", orderHandler.Get)
		ventas.PATCH("/orders/:id", orderHandler.UpdateStatus)
		ventas.DELETE("/orders/:id", orderHandler.Delete)
		ventas.POST("/orders/:id/items", orderHandler.AddItem)
		ventas.POST("/add_item", orderHandler.AddItemNewOrder)
		ventas.DELETE("/orders/:id/items/:item_id", orderHandler.DeleteItem)
	}

	return r
}
