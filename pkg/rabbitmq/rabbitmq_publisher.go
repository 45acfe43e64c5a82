package rabbitmq

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FinCube-23/transferPoC-sub001/pkg/utilities"
)

type RabbitmqPublisher struct {
	Channel    *amqp.Channel
	Exchange   string
	RoutingKey string
}

type IRabbitmqPublisher interface {
	Publish(body utilities.Serializable) error
}

func NewPublisher(conn *amqp.Connection, cfg RabbitmqPublisherConfig) (*RabbitmqPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	return &RabbitmqPublisher{
		Channel:    channel,
		Exchange:   cfg.Exchange,
		RoutingKey: cfg.RoutingKey,
	}, nil
}

func (rp *RabbitmqPublisher) Publish(body utilities.Serializable) error {
	payload, err := body.Serialize()
	if err != nil {
		return err
	}

	return rp.Channel.Publish(
		rp.Exchange,
		rp.RoutingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
}

func (rp *RabbitmqPublisher) Close() error {
	return rp.Channel.Close()
}
