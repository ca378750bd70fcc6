package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parlor-billing/controllers"
	"github.com/yeremiapane/parlor-billing/hub"
	"github.com/yeremiapane/parlor-billing/middlewares"
	"github.com/yeremiapane/parlor-billing/services"
)

// Deps are the collaborators the routes dispatch to. RateLimiter may be nil.
type Deps struct {
	Sessions      *services.SessionService
	Catalogue     *services.CatalogueService
	Hub           *hub.Hub
	RateLimiter   *middlewares.RateLimiter
	DefaultTenant uint
	CORSOrigin    string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(d.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	sessionCtrl := controllers.NewTableSessionController(d.Sessions)
	tableCtrl := controllers.NewTableController(d.Catalogue)
	billingCtrl := controllers.NewBillingMethodController(d.Catalogue)
	productCtrl := controllers.NewProductController(d.Catalogue)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	if d.RateLimiter != nil {
		api.Use(d.RateLimiter.RateLimit())
	}
	api.Use(middlewares.TenantMiddleware(d.DefaultTenant))

	// TABLE SESSIONS
	api.GET("/tables/active", sessionCtrl.GetActiveTables)
	api.POST("/tables/start", sessionCtrl.StartSession)
	api.POST("/tables/add-product", sessionCtrl.AddProduct)
	api.POST("/tables/end/:session_id", sessionCtrl.EndSession)
	api.GET("/sessions/:session_id", sessionCtrl.GetSession)

	// TABLES
	api.GET("/tables", tableCtrl.GetAllTables)
	api.POST("/tables", tableCtrl.CreateTable)

	// BILLING METHODS
	api.GET("/billing-methods", billingCtrl.GetAllBillingMethods)
	api.POST("/billing-methods", billingCtrl.CreateBillingMethod)
	api.PUT("/billing-methods/:id", billingCtrl.UpdateBillingMethod)
	api.DELETE("/billing-methods/:id", billingCtrl.DeleteBillingMethod)

	// PRODUCTS
	api.GET("/products", productCtrl.GetAllProducts)
	api.POST("/products", productCtrl.CreateProduct)

	if d.Hub != nil {
		ws := r.Group("/ws")
		ws.Use(middlewares.TenantMiddleware(d.DefaultTenant))
		ws.GET("/dashboard", controllers.DashboardHandler(d.Hub))
	}

	return r
}
