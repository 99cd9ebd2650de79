// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"recruitment-platform/internal/domain"
)

var jsonMarshal = json.Marshal

const (
	defaultQueueSize = 1000
	writeTimeout     = 5 * time.Second
)

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer queues events and writes them from a single background loop.
// Publish never blocks; events are dropped with a warning when the queue is full.
type Producer struct {
	writer    KafkaWriter
	events    chan domain.Event
	logger    *zap.Logger
	closeChan chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewProducer connects to brokers and makes sure topic exists. Topic
// creation failures are logged and ignored.
func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	ensureTopic(brokers, topic, logger)
	return newProducer(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		Topic:                  topic,
		AllowAutoTopicCreation: true,
	}, logger, defaultQueueSize)
}

func newProducer(writer KafkaWriter, logger *zap.Logger, queueSize int) *Producer {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Producer{
		writer:    writer,
		events:    make(chan domain.Event, queueSize),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
	go p.eventLoop()
	return p
}

func ensureTopic(brokers []string, topic string, logger *zap.Logger) {
	if len(brokers) == 0 || logger == nil {
		return
	}
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		logger.Warn("kafka dial failed, topic not ensured", zap.Error(err))
		return
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}
}

func (p *Producer) Publish(_ context.Context, event domain.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	select {
	case <-p.closeChan:
		p.logger.Warn("producer closed, dropping event", zap.String("event_type", string(event.Type)))
		return
	default:
	}
	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key),
		)
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case event := <-p.events:
			p.sendEvent(event)
		case <-p.closeChan:
			// Flush what is already queued
			for {
				select {
				case event := <-p.events:
					p.sendEvent(event)
				default:
					return
				}
			}
		}
	}
}

func (p *Producer) sendEvent(event domain.Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key),
		)
	}
}

// Close stops accepting events, flushes the queue and closes the writer.
func (p *Producer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeChan)
		<-p.done
		if err := p.writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka writer", zap.Error(err))
		}
	})
}

// NopPublisher discards every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) {}
