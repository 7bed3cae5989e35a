package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pos/cmd"
	"pos/internal/adapters/out/httpclient"
	"pos/internal/adapters/out/rabbitmq"
	"pos/internal/core/application/projection"
	"pos/internal/core/domain/model/actor"
	"pos/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	role, err := actor.RoleFromString(configs.ActorRole)
	if err != nil {
		log.Fatalf("Invalid BOARD_ACTOR_ROLE value %q", configs.ActorRole)
	}

	connection, err := rabbitmq.NewConnection(configs.RabbitURL, logger)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer connection.Close()

	gateway := httpclient.NewGateway(configs.StoreURL, role)
	board := projection.NewProjection(configs.BranchID, gateway, logger)
	loop := projection.NewLoop(board, rabbitmq.NewSubscriber(connection, logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobManager := jobs.NewJobManager(loop, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	if err := loop.Run(ctx); err != nil {
		log.Fatalf("Board loop stopped: %v", err)
	}
}

func getConfigs() cmd.BoardConfig {
	return cmd.BoardConfig{
		StoreURL:  goDotEnvVariable("BOARD_STORE_URL"),
		RabbitURL: goDotEnvVariable("RABBITMQ_URL"),
		BranchID:  goDotEnvVariable("BOARD_BRANCH_ID"),
		ActorRole: goDotEnvVariable("BOARD_ACTOR_ROLE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}
