package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/database"
	"github.com/tomdewit/bartab-app/router"
	"github.com/tomdewit/bartab-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
}

// openDatabase connects to MySQL when DB_HOST is configured, otherwise
// falls back to a local sqlite file so the app runs without a server.
func openDatabase() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "bartab.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		host,
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func main() {
	utils.InitLogger()

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase()
	if err != nil {
		utils.ErrorLogger.Fatalf("failed to connect database: %v", err)
	}
	utils.InitDB(db)

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("failed to migrate: %v", err)
	}

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("BarTab listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("server stopped: %v", err)
	}
}
