package rabbitmq

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/FinCube-23/transferPoC-sub001/pkg/utilities"
)

type LoggerMessage struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (lm LoggerMessage) Serialize() ([]byte, error) {
	return utilities.Serialize[LoggerMessage](lm)
}

// CreateRabbitmqLoggerSink ships log lines to the broker. It must never log
// through the logger itself, else a broker outage loops forever.
func CreateRabbitmqLoggerSink(publisher IRabbitmqPublisher) func(zerolog.Level, string) {
	return func(level zerolog.Level, msg string) {
		loggerMessage := LoggerMessage{
			Level:     level.String(),
			Message:   msg,
			Timestamp: time.Now().UTC(),
		}

		if err := publisher.Publish(loggerMessage); err != nil {
			fmt.Printf("Failed to publish log message to RabbitMQ: %v\n", err)
		}
	}
}
