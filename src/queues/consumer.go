package queues

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FinCube-23/transferPoC-sub001/pkg/logger"
	"github.com/FinCube-23/transferPoC-sub001/pkg/rabbitmq"
	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
)

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDraining:
		return "draining"
	default:
		return "disconnected"
	}
}

const DefaultStopTimeout = 30 * time.Second

// ProofGenerator is the job-side view of the proof service.
type ProofGenerator interface {
	GenerateProof(userID, orgID int, isKYCed bool) model.ProofResponse
}

type ConsumerConfig struct {
	URL           string
	ConsumerTag   string
	PrefetchCount int
}

// Consumer bridges the proof job queue to the proof service. It exclusively
// owns its connection and channel; lifecycle transitions are serialized by
// the lifecycle mutex while state reads stay lock-free for IsConnected.
type Consumer struct {
	cfg     ConsumerConfig
	service ProofGenerator

	lifecycle sync.Mutex
	state     atomic.Int32

	conn      *amqp.Connection
	channel   *amqp.Channel
	publisher rabbitmq.IRabbitmqPublisher
	jobs      sync.WaitGroup
	loopDone  chan struct{}
}

func NewConsumer(cfg ConsumerConfig, service ProofGenerator) *Consumer {
	if cfg.ConsumerTag == "" {
		cfg.ConsumerTag = "proof-consumer"
	}
	if cfg.PrefetchCount <= 0 {
		cfg.PrefetchCount = 4
	}
	return &Consumer{cfg: cfg, service: service}
}

// Start connects and begins consuming. Calling it while Connected or
// Connecting is a no-op; a failed attempt leaves the consumer Disconnected
// and reports the error without touching any other subsystem.
func (c *Consumer) Start() error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	switch c.currentState() {
	case StateConnected, StateConnecting:
		return nil
	}
	c.state.Store(int32(StateConnecting))

	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		c.state.Store(int32(StateDisconnected))
		return apperrors.NewConnection(err, "could not connect to broker")
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		c.state.Store(int32(StateDisconnected))
		return apperrors.NewConnection(err, "could not open channel")
	}

	if err := SetupProofQueues(channel); err != nil {
		_ = conn.Close()
		c.state.Store(int32(StateDisconnected))
		return apperrors.NewConnection(err, "could not declare proof queues")
	}

	// Prefetch bounds the number of unacked (therefore in-flight) jobs.
	if err := channel.Qos(c.cfg.PrefetchCount, 0, false); err != nil {
		_ = conn.Close()
		c.state.Store(int32(StateDisconnected))
		return apperrors.NewConnection(err, "could not set prefetch")
	}

	deliveries, err := channel.Consume(
		ProofJobQueue,
		c.cfg.ConsumerTag,
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		_ = conn.Close()
		c.state.Store(int32(StateDisconnected))
		return apperrors.NewConnection(err, "could not register consumer")
	}

	publisher, err := rabbitmq.NewPublisher(conn, rabbitmq.RabbitmqPublisherConfig{
		Exchange:   ProofExchange,
		RoutingKey: ProofResultRoutingKey,
	})
	if err != nil {
		_ = conn.Close()
		c.state.Store(int32(StateDisconnected))
		return apperrors.NewConnection(err, "could not open result publisher")
	}

	c.conn = conn
	c.channel = channel
	c.publisher = publisher
	c.loopDone = make(chan struct{})
	c.state.Store(int32(StateConnected))

	closeCh := conn.NotifyClose(make(chan *amqp.Error, 1))
	go c.watchClose(closeCh)
	go c.dispatch(deliveries)

	logger.Default().Infof("Consuming proof jobs from %s (prefetch %d)", ProofJobQueue, c.cfg.PrefetchCount)
	return nil
}

// IsConnected is a pure observation of the current state.
func (c *Consumer) IsConnected() bool {
	return c.currentState() == StateConnected
}

func (c *Consumer) CurrentState() State {
	return c.currentState()
}

// Stop drains: no new jobs are accepted and dispatched jobs get up to
// timeout to finish acknowledging. Jobs still outstanding afterwards are
// abandoned to broker redelivery. Always ends Disconnected; stopping an
// already-Disconnected consumer is a no-op success.
func (c *Consumer) Stop(timeout time.Duration) error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.currentState() == StateDisconnected {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultStopTimeout
	}
	c.state.Store(int32(StateDraining))

	queueLogger := logger.Default()
	queueLogger.Info("Draining proof consumer...")

	if c.channel != nil {
		_ = c.channel.Cancel(c.cfg.ConsumerTag, false)
	}

	drained := make(chan struct{})
	go func(loopDone chan struct{}) {
		if loopDone != nil {
			<-loopDone
		}
		c.jobs.Wait()
		close(drained)
	}(c.loopDone)

	select {
	case <-drained:
		queueLogger.Info("All in-flight proof jobs finished")
	case <-time.After(timeout):
		queueLogger.Warnf("Drain timeout after %v; abandoning outstanding jobs to redelivery", timeout)
	}

	if c.conn != nil {
		_ = c.conn.Close()
	}
	// publisher is left in place: abandoned handlers may still attempt a
	// result publish, which fails harmlessly on the closed channel.
	c.conn = nil
	c.channel = nil
	c.loopDone = nil
	c.state.Store(int32(StateDisconnected))
	return nil
}

func (c *Consumer) currentState() State {
	return State(c.state.Load())
}

// dispatch fans deliveries out to handler goroutines. The prefetch window
// is the concurrency bound: the broker withholds further deliveries until
// earlier ones are acked or nacked.
func (c *Consumer) dispatch(deliveries <-chan amqp.Delivery) {
	defer close(c.loopDone)

	for d := range deliveries {
		c.jobs.Add(1)
		go func(d amqp.Delivery) {
			defer c.jobs.Done()
			c.handleDelivery(d)
		}(d)
	}
}

// watchClose surfaces an unexpected connection drop as a state change. The
// hosting process keeps running; a deliberate Stop closes the connection
// with a nil error and is ignored here.
func (c *Consumer) watchClose(closeCh <-chan *amqp.Error) {
	err, ok := <-closeCh
	if !ok || err == nil {
		return
	}

	logger.Default().Errorf(err, "Broker connection lost")
	c.state.CompareAndSwap(int32(StateConnected), int32(StateDisconnected))
}

func (c *Consumer) handleDelivery(d amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			logger.Default().Errorf(nil, "Recovered from panic in proof job handler: %v", r)
			_ = d.Nack(false, false)
		}
	}()

	queueLogger := logger.Default()

	var job model.ProofJobMessage
	if err := json.Unmarshal(d.Body, &job); err != nil || job.UserId == nil || job.OrgId == nil {
		queueLogger.Warnf("Dropping malformed proof job payload")
		_ = d.Nack(false, false) // straight to dead-letter, service never invoked
		return
	}

	response := c.service.GenerateProof(*job.UserId, *job.OrgId, job.IsKYCed)

	if response.Success {
		_ = d.Ack(false)
		c.publishResult(job, response)
		return
	}

	if response.Error != nil && apperrors.RequestScopedType(response.Error.Type) {
		// Redelivery cannot fix a bad request.
		queueLogger.Warnf("Proof job for user %d rejected: %s", *job.UserId, response.Error.Type)
		_ = d.Nack(false, false)
		c.publishResult(job, response)
		return
	}

	if d.Redelivered {
		queueLogger.Warnf("Proof job for user %d failed twice; dead-lettering", *job.UserId)
		_ = d.Nack(false, false)
		c.publishResult(job, response)
		return
	}

	queueLogger.Warnf("Proof job for user %d failed; requeueing once", *job.UserId)
	_ = d.Nack(false, true)
}

func (c *Consumer) publishResult(job model.ProofJobMessage, response model.ProofResponse) {
	if c.publisher == nil {
		return
	}

	result := model.ProofResultDto{
		UserId:       *job.UserId,
		OrgId:        *job.OrgId,
		Success:      response.Success,
		Proof:        response.Proof,
		PublicInputs: response.PublicInputs,
	}
	if response.Error != nil {
		result.Error = response.Error.Message
	}

	if err := c.publisher.Publish(result); err != nil {
		logger.Default().Errorf(err, "Could not publish proof result for user %d", result.UserId)
	}
}
