package routes

import (
	"exam-store/config"
	"exam-store/controllers"
	"exam-store/middleware"
	"exam-store/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, assets *models.CloudinaryService, email *models.EmailService) {
	authCtrl := controllers.NewAuthController(db)
	productCtrl := controllers.NewProductController(db, assets)
	courseCtrl := controllers.NewCourseController(db, assets)
	adCtrl := controllers.NewAdController(db, assets)
	orderCtrl := controllers.NewOrderController(db, email)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")

	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)

	api.GET("/products", productCtrl.GetAllProducts)
	api.GET("/products/:id", productCtrl.GetProductByID)

	api.GET("/courses", courseCtrl.GetAllCourses)
	api.GET("/courses/featuredreels", courseCtrl.GetFeaturedReels)
	api.GET("/courses/search", courseCtrl.SearchCourses)
	api.GET("/courses/:id", courseCtrl.GetCourseByID)

	api.GET("/ads", adCtrl.GetAllAds)
	api.GET("/ads/:id", adCtrl.GetAdByID)

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/products/stream-pdf/:productId", productCtrl.StreamPDF)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.POST("/orders/create-payment-intent", orderCtrl.CreatePaymentIntent)
		auth.GET("/orders/myorders", orderCtrl.GetMyOrders)
	}

	admin := api.Group("/")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PUT("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.GET("/courses/admin", courseCtrl.GetAllCoursesAdmin)
		admin.POST("/courses", courseCtrl.CreateCourse)
		admin.POST("/courses/featured", courseCtrl.CreateFeaturedCourse)
		admin.PUT("/courses/:id", courseCtrl.UpdateCourse)
		admin.DELETE("/courses/:id", courseCtrl.DeleteCourse)

		admin.POST("/ads", adCtrl.CreateAd)
		admin.PUT("/ads/:id", adCtrl.UpdateAd)
		admin.DELETE("/ads/:id", adCtrl.DeleteAd)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.DELETE("/orders/:id", orderCtrl.DeleteOrder)
	}

	router.Static("/uploads", config.AppConfig.UploadDir)
}
