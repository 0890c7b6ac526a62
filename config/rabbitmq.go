package config

import (
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

func NewRabbitMQ(cfg *Config) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connect: %w", err)
	}

	// Alert publishing degrades gracefully on a lost broker; log the close
	// reason so a silent alert gap is diagnosable.
	go func() {
		if err := <-conn.NotifyClose(make(chan *amqp.Error, 1)); err != nil {
			log.Printf("rabbitmq connection closed: %v", err)
		}
	}()

	return conn, nil
}
