package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"chat_back_end_go/db"
	"chat_back_end_go/routes"
	"chat_back_end_go/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	r := gin.Default()

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(config))

	// Initialize database
	conn, err := db.InitDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer conn.Close()

	store := storage.NewPostgres(conn)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Initialize routes
	routes.SetupUserRoutes(r, store)
	routes.SetupChatRoutes(r, store)
	routes.SetupMessageRoutes(r, store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	// Start server
	r.Run(":" + port)
}
