package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/thecae/wilpower/internal/config"
	"github.com/thecae/wilpower/internal/database"
	"github.com/thecae/wilpower/internal/routes"
)

func main() {
	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)
	rdb := database.ConnectRedis(cfg.RedisAddr)

	router := gin.Default()
	routes.RegisterRoutes(router, db, rdb, cfg)

	log.Println("server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
