// Package events is the transactional outbox and event bus shared by the
// catalog and rental contexts, built on Watermill's PostgreSQL transport.
//
// The API process publishes domain events inside the business transaction
// (PublishInTx). In outbox mode those rows land on an internal topic and a
// forwarder relays them to their real topics after commit, so an approved
// rental and its rental.status_changed event are stored or lost together.
// The worker process subscribes with one consumer group per service, so each
// event is handled by exactly one worker replica.
//
// Handlers must be idempotent: delivery is at least once. Every message
// carries event_id and event_version metadata for deduplication.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rentrobe/rentrobe/pkg/config"
	"github.com/rentrobe/rentrobe/pkg/logger"
)

const (
	// outboxTopic holds enveloped events until the forwarder relays them.
	outboxTopic     = "rentrobe_outbox"
	shutdownTimeout = 30 * time.Second
)

// RetryPolicy controls redelivery of a failing handler inside one process.
// Attempts after the first wait InitialInterval, doubling each time.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
}

// DefaultRetryPolicy retries three times after 1s, 2s and 4s.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, InitialInterval: time.Second}

// EventBus publishes and consumes domain events.
type EventBus struct {
	publisher  message.Publisher // outbox-enveloping when useForwarder
	sink       message.Publisher // direct; poison messages skip the outbox
	subscriber message.Subscriber
	fwd        *forwarder.Forwarder
	db         *sql.DB
	wlog       *slogAdapter
	log        logger.Logger
	retry      RetryPolicy
	wg         sync.WaitGroup

	useForwarder   bool
	forwarderGroup string
}

// NewEventBus opens the bus for a process that only subscribes or publishes
// outside transactions (the worker).
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, false)
}

// NewEventBusWithForwarder opens the bus in outbox mode. Call StartForwarder
// once the process is ready to relay committed events.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, true)
}

func newEventBus(cfg *config.Config, log logger.Logger, useForwarder bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}
	wlog := &slogAdapter{log: log}

	sink, err := watermillsql.NewPublisher(db, publisherConfig(true), wlog)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	sub, err := watermillsql.NewSubscriber(db, subscriberConfig(cfg.ServiceName+"-consumer"), wlog)
	if err != nil {
		_ = sink.Close()
		_ = db.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	bus := &EventBus{
		publisher:      sink,
		sink:           sink,
		subscriber:     sub,
		db:             db,
		wlog:           wlog,
		log:            log,
		retry:          DefaultRetryPolicy,
		useForwarder:   useForwarder,
		forwarderGroup: cfg.ServiceName + "-forwarder",
	}
	if useForwarder {
		bus.publisher = envelope(sink)
	}
	return bus, nil
}

func publisherConfig(initSchema bool) watermillsql.PublisherConfig {
	return watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}
}

func subscriberConfig(group string) watermillsql.SubscriberConfig {
	return watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}
}

func envelope(pub message.Publisher) message.Publisher {
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: outboxTopic})
}

// StartForwarder relays outbox rows to their target topics until ctx ends.
// It returns once the relay is running. Only valid in outbox mode, once.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.useForwarder {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	outbox, err := watermillsql.NewSubscriber(q.db, subscriberConfig(q.forwarderGroup), q.wlog)
	if err != nil {
		return fmt.Errorf("events: new outbox subscriber: %w", err)
	}
	fwd, err := forwarder.NewForwarder(outbox, q.sink, q.wlog, forwarder.Config{ForwarderTopic: outboxTopic})
	if err != nil {
		_ = outbox.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: outbox relay started", "topic", outboxTopic)
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: outbox relay stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: outbox relay stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for forwarder: %w", ctx.Err())
	}
}

// Publish sends msgs to topic outside any transaction, carrying the trace
// from ctx.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// PublishInTx writes msgs through tx so they become visible only if tx
// commits. In outbox mode they are enveloped for the forwarder.
func (q *EventBus) PublishInTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	pub, err := watermillsql.NewPublisher(tx, publisherConfig(false), q.wlog)
	if err != nil {
		return fmt.Errorf("events: new tx publisher: %w", err)
	}
	var p message.Publisher = pub
	if q.useForwarder {
		p = envelope(pub)
	}
	injectTrace(ctx, msgs)
	if err := p.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s in tx: %w", topic, err)
	}
	return nil
}

// Ping checks the bus database connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if q.db == nil {
		return errors.New("events: bus not connected")
	}
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consuming, stops the relay, waits up to 30s for in-flight
// handlers and then releases the publisher and the connection.
func (q *EventBus) Close() error {
	var errs []error
	if err := q.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close subscriber: %w", err))
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close forwarder: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := q.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close publisher: %w", err))
	}
	if q.db != nil {
		if err := q.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close db: %w", err))
		}
	}
	return errors.Join(errs...)
}
