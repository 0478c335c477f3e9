package main

import (
	"BotDisk/config"
	"BotDisk/internal/repo"
	"BotDisk/internal/storage"
	"BotDisk/router"
)

// main initializes services and starts the HTTP server.
func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitStore()

	router := router.InitRouter()

	router.Run(config.AppConfig.ListenAddr)
}
