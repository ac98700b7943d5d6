package main

import (
	"Leaf-Love-Backend/cmd/config"
	migration "Leaf-Love-Backend/cmd/database/migrate"
	"Leaf-Love-Backend/internal/utils"
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "prepare the plant store and exit")
	flag.Parse()

	utils.LoadConfig()
	connector := config.ConnectDB()
	defer func() {
		if err := connector.Close(context.Background()); err != nil {
			log.Errorf("error closing database: %v", err)
		}
	}()

	if *migrate {
		if err := migration.Migrate(context.Background(), connector); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		return
	}

	app, err := config.NewApp(connector)
	if err != nil {
		log.Fatalf("error building app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("error shutting down: %v", err)
		}
	}()

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
