// Package kafka provides a buffered async producer for domain events.
package kafka

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer writes messages to a single topic through a buffered inbox so
// request handlers never block on the broker.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
	inbox  chan kafka.Message
	done   chan struct{}

	// mu guards closed so Publish never sends on a closed inbox.
	mu     sync.RWMutex
	closed bool
}

// NewProducer configures a producer for the given brokers and topic.
// buf bounds the inbox; Publish drops messages once it is full.
func NewProducer(brokers []string, topic string, buf int, logger *slog.Logger) *Producer {
	if buf <= 0 {
		buf = 256
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		logger: logger,
		inbox:  make(chan kafka.Message, buf),
		done:   make(chan struct{}),
	}
}

// Start launches the drain loop. It runs until ctx is cancelled or Close is
// called, flushing whatever is left in the inbox before returning.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.done)
		for {
			select {
			case <-ctx.Done():
				p.drain()
				return
			case msg, ok := <-p.inbox:
				if !ok {
					_ = p.writer.Close()
					return
				}
				p.write(msg)
			}
		}
	}()
}

// Publish enqueues a message. Events are notifications, not state of record,
// so a full inbox or a producer that is shutting down drops the message with
// a warning instead of blocking or panicking.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.warnDrop("kafka producer closed, dropping event", key)
		return
	}
	msg := kafka.Message{Key: key, Value: value, Time: time.Now(), Headers: headers}
	select {
	case p.inbox <- msg:
	default:
		p.warnDrop("kafka inbox full, dropping event", key)
	}
}

// Close stops accepting messages and lets the drain loop flush and exit.
func (p *Producer) Close() { p.closeInbox() }

func (p *Producer) closeInbox() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

func (p *Producer) warnDrop(msg string, key []byte) {
	if p.logger != nil {
		p.logger.Warn(msg, slog.String("key", string(key)))
	}
}

// WaitClosed blocks until the drain loop has finished.
func (p *Producer) WaitClosed() { <-p.done }

func (p *Producer) write(msg kafka.Message) {
	if err := p.writer.WriteMessages(context.Background(), msg); err != nil && p.logger != nil {
		p.logger.Warn("failed to publish kafka message", slog.String("error", err.Error()))
	}
}

func (p *Producer) drain() {
	p.closeInbox()
	for msg := range p.inbox {
		p.write(msg)
	}
	_ = p.writer.Close()
}
