package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/controllers"
	"github.com/tomdewit/bartab-app/middlewares"
	"github.com/tomdewit/bartab-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	barService := services.NewBarService(db)
	personService := services.NewPersonService(barService)
	categoryService := services.NewCategoryService(barService)
	productService := services.NewProductService(barService)
	sessionService := services.NewSessionService(barService)
	billService := services.NewBillService(barService)
	orderService := services.NewOrderService(barService)

	userCtrl := controllers.NewUserController(db)
	barCtrl := controllers.NewBarController(barService)
	personCtrl := controllers.NewPersonController(personService)
	categoryCtrl := controllers.NewCategoryController(categoryService)
	productCtrl := controllers.NewProductController(productService)
	sessionCtrl := controllers.NewSessionController(sessionService)
	billCtrl := controllers.NewBillController(billService)
	orderCtrl := controllers.NewOrderController(orderService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Live event stream, token passed as query parameter.
	ws := r.Group("/bars/:bar_id/live")
	ws.Use(middlewares.WebSocketAuthMiddleware(), middlewares.BarOwnerCheck(db))
	ws.GET("", controllers.LiveHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.NewAPIRateLimiter(), middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/bars", barCtrl.GetMyBars)
		auth.POST("/bars", barCtrl.CreateBar)
	}

	// Everything below a bar id requires owning that bar.
	bar := auth.Group("/bars/:bar_id")
	bar.Use(middlewares.BarOwnerCheck(db))
	{
		bar.GET("", barCtrl.GetBar)
		bar.PATCH("", barCtrl.UpdateBar)
		bar.DELETE("", barCtrl.DeleteBar)

		bar.GET("/people", personCtrl.GetCustomers)
		bar.POST("/people", personCtrl.CreateCustomer)
		bar.GET("/people/:person_id", personCtrl.GetCustomer)
		bar.PATCH("/people/:person_id", personCtrl.UpdateCustomer)
		bar.POST("/people/:person_id/link-user", personCtrl.LinkUser)
		bar.DELETE("/people/:person_id", personCtrl.DeleteCustomer)
		bar.GET("/people/:person_id/bills", billCtrl.GetCustomerBills)

		bar.GET("/categories", categoryCtrl.GetAllCategories)
		bar.POST("/categories", categoryCtrl.CreateCategory)
		bar.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
		bar.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		bar.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		bar.GET("/products", productCtrl.GetAllProducts)
		bar.POST("/products", productCtrl.CreateProduct)
		bar.GET("/products/:product_id", productCtrl.GetProductByID)
		bar.PUT("/products/:product_id", productCtrl.UpdateProduct)
		bar.DELETE("/products/:product_id", productCtrl.DeleteProduct)

		bar.GET("/sessions", sessionCtrl.GetAllSessions)
		bar.POST("/sessions", sessionCtrl.CreateSession)
		// Registered outside /sessions/:session_id, the route tree does
		// not allow a static segment next to the parameter.
		bar.GET("/active-session", sessionCtrl.GetActiveSession)
		bar.GET("/sessions/:session_id", sessionCtrl.GetSessionByID)
		bar.PATCH("/sessions/:session_id", sessionCtrl.UpdateSession)
		bar.POST("/sessions/:session_id/lock", sessionCtrl.LockSession)
		bar.POST("/sessions/:session_id/end", sessionCtrl.EndSession)
		bar.DELETE("/sessions/:session_id", sessionCtrl.DeleteSession)

		bar.GET("/sessions/:session_id/bills", billCtrl.GetBills)
		bar.POST("/sessions/:session_id/bills", billCtrl.AddCustomer)
		bar.GET("/sessions/:session_id/bills/:bill_id", billCtrl.GetBillByID)
		bar.POST("/sessions/:session_id/bills/:bill_id/pay", billCtrl.PayBill)
		bar.GET("/sessions/:session_id/bills/:bill_id/receipt", billCtrl.GetReceipt)
		bar.DELETE("/sessions/:session_id/bills/:bill_id", billCtrl.DeleteBill)

		bar.GET("/sessions/:session_id/bills/:bill_id/orders", orderCtrl.GetOrders)
		bar.POST("/sessions/:session_id/bills/:bill_id/orders", orderCtrl.AddOrder)
		bar.GET("/sessions/:session_id/bills/:bill_id/orders/:order_id", orderCtrl.GetOrderByID)
		bar.DELETE("/sessions/:session_id/bills/:bill_id/orders/:order_id", orderCtrl.DeleteOrder)
	}

	return r
}
