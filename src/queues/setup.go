package queues

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ProofExchange           = "proof"
	ProofDeadLetterExchange = "proof.dlx"

	ProofJobQueue         = "proof.generate"
	ProofJobRoutingKey    = "proof.generate"
	ProofResultQueue      = "proof.results"
	ProofResultRoutingKey = "proof.results"
	ProofDeadLetterQueue  = "proof.generate.dead"
	LogQueue              = "service.logs"
	LogRoutingKey         = "service.logs"
)

// SetupProofQueues declares the proof topology: the job queue (dead-lettered
// into proof.dlx after nacks without requeue), the result queue, and the log
// queue. Declarations are idempotent; both the API and any worker replica
// can run this at startup.
func SetupProofQueues(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		ProofExchange, // name
		"direct",      // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(
		ProofDeadLetterExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		ProofJobQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-dead-letter-exchange":    ProofDeadLetterExchange,
			"x-dead-letter-routing-key": ProofJobRoutingKey,
		},
	); err != nil {
		return err
	}
	if err := ch.QueueBind(ProofJobQueue, ProofJobRoutingKey, ProofExchange, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(ProofDeadLetterQueue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(ProofDeadLetterQueue, ProofJobRoutingKey, ProofDeadLetterExchange, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(ProofResultQueue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(ProofResultQueue, ProofResultRoutingKey, ProofExchange, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(LogQueue, false, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(LogQueue, LogRoutingKey, ProofExchange, false, nil)
}
