package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/geofence-tracker/config"
	"github.com/nandanugg/geofence-tracker/module/core"
)

func main() {
	cfg := config.Load()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	coreModule, err := core.Build(db, amqpConn, mqttClient)
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	if err := coreModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	if cfg.FeedURL != "" {
		poller := coreModule.NewFeedPoller(cfg.FeedURL, cfg.FeedInterval)
		go poller.Run(context.Background())
		log.Printf("polling feed %s every %s", cfg.FeedURL, cfg.FeedInterval)
	}

	r := gin.Default()

	health := config.NewHealthChecker(db, amqpConn, mqttClient)
	health.Register(r)

	coreModule.RegisterRoutes(r.Group("/api"))

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
