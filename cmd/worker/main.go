package main

import (
	"BotDisk/config"
	"BotDisk/internal/repo"
	"BotDisk/internal/storage"
	"BotDisk/internal/worker"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("fetch worker started")
	if err := worker.RunFetchWorker(ctx); err != nil {
		log.Fatalf("fetch worker stopped: %v", err)
	}
}
