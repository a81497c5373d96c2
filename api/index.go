package api

import (
	"net/http"
	"sync"

	"exam-store/config"
	"exam-store/middleware"
	"exam-store/models"
	"exam-store/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.SetupLogger()
		config.LoadConfig()

		db := config.ConnectDB()
		models.InitRedis()

		assets, err := models.NewCloudinaryService()
		if err != nil {
			logrus.Fatalf("Failed to init Cloudinary: %v", err)
		}

		email, err := models.NewEmailService()
		if err != nil {
			email = nil
		}

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		routes.SetupRoutes(router, db, assets, email)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
