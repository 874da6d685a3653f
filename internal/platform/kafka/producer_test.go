package kafka

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_DropsWhenInboxFull(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	// drain loop deliberately not started, so the inbox fills up
	p := NewProducer([]string{"localhost:9092"}, "test-topic", 1, logger)

	p.Publish([]byte("k1"), []byte("v1"))
	p.Publish([]byte("k2"), []byte("v2"))

	require.Len(t, p.inbox, 1)
	assert.Contains(t, buf.String(), "dropping event")
	assert.Contains(t, buf.String(), "k2")
}

func TestPublish_AfterCloseDropsInsteadOfPanicking(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	p := NewProducer([]string{"localhost:9092"}, "test-topic", 4, logger)

	p.Close()

	require.NotPanics(t, func() {
		p.Publish([]byte("late"), []byte("v"))
	})
	assert.Contains(t, buf.String(), "producer closed")
}

func TestPublish_RacesCloseSafely(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "test-topic", 1, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Publish([]byte("k"), []byte("v"))
			}
		}()
	}
	p.Close()
	wg.Wait()
}

func TestClose_IsIdempotent(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "test-topic", 1, nil)

	require.NotPanics(t, func() {
		p.Close()
		p.Close()
	})
}
