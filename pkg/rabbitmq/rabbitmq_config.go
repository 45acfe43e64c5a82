package rabbitmq

import (
	"fmt"

	"github.com/FinCube-23/transferPoC-sub001/pkg/utilities"
)

type RabbitmqConfigJson struct {
	Host             string                        `json:"host"`
	Port             int                           `json:"port"`
	User             string                        `json:"user"`
	Password         string                        `json:"password"`
	ConsumerTag      string                        `json:"consumer_tag"`
	PrefetchCount    int                           `json:"prefetch_count"`
	PublishersConfig []RabbitmqPublisherConfigJson `json:"publishers"`
}

type RabbitmqConfig struct {
	Host             string
	Port             int
	User             string
	Password         string
	ConsumerTag      string
	PrefetchCount    int
	PublishersConfig []RabbitmqPublisherConfig
}

func (rcj RabbitmqConfigJson) ConvertToDomain() RabbitmqConfig {
	return RabbitmqConfig{
		Host:             rcj.Host,
		Port:             rcj.Port,
		User:             rcj.User,
		Password:         rcj.Password,
		ConsumerTag:      rcj.ConsumerTag,
		PrefetchCount:    rcj.PrefetchCount,
		PublishersConfig: utilities.ConvertJsonArrayToDomain[RabbitmqPublisherConfigJson, RabbitmqPublisherConfig](rcj.PublishersConfig),
	}
}

func (rc RabbitmqConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", rc.User, rc.Password, rc.Host, rc.Port)
}

type RabbitmqPublisherConfigJson struct {
	PublisherAlias string `json:"publisher_alias"`
	Exchange       string `json:"exchange"`
	RoutingKey     string `json:"routing_key"`
}

type RabbitmqPublisherConfig struct {
	PublisherAlias string
	Exchange       string
	RoutingKey     string
}

func (rpcj RabbitmqPublisherConfigJson) ConvertToDomain() RabbitmqPublisherConfig {
	return RabbitmqPublisherConfig{
		PublisherAlias: rpcj.PublisherAlias,
		Exchange:       rpcj.Exchange,
		RoutingKey:     rpcj.RoutingKey,
	}
}
