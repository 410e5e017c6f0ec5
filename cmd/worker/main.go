package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cargomarket/backend/cmd/config"
	"github.com/cargomarket/backend/thirdparty/rabbitmq"
	"github.com/cargomarket/backend/thirdparty/smsgateway"
	"github.com/cargomarket/backend/utils/logger"
)

// The worker drains the SMS queue and hands each message to the gateway.
// It runs as its own binary so API deployments never interrupt delivery.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting SMS worker", zap.String("env", cfg.Environment))

	var sender rabbitmq.Sender
	if cfg.SMS.MockMode {
		sender = smsgateway.NewMockSender()
	} else {
		sender = smsgateway.NewClient(cfg.SMS.GatewayURL, cfg.SMS.GatewayKey, cfg.SMS.Sender)
	}

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, sender)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutdown signal received")
		cancel()
	}()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}

	logger.Info("SMS worker running")
	<-ctx.Done()
	logger.Info("SMS worker stopped")
}
