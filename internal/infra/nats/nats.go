package natsclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/cdentertainment/site-api/config"
	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/nats-io/nats.go"
)

const defaultConnectTimeout = 5 * time.Second

// Connect creates a NATS connection (with JetStream available) using application config.
func Connect(cfg config.NATSConfig) (*nats.Conn, nats.JetStreamContext, error) {
	opts := []nats.Option{
		nats.Timeout(defaultConnectTimeout),
		nats.Name("site-api"),
		nats.MaxReconnects(-1),
	}

	if cfg.User != "" {
		opts = append(opts, nats.UserInfo(cfg.User, cfg.Password))
	}

	conn, err := nats.Connect(URL(cfg), opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("nats: connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("nats: init jetstream: %w", err)
	}

	return conn, js, nil
}

// StreamManager is the slice of nats.JetStreamContext needed to provision streams.
type StreamManager interface {
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	ConsumerInfo(stream, name string, opts ...nats.JSOpt) (*nats.ConsumerInfo, error)
	AddConsumer(stream string, cfg *nats.ConsumerConfig, opts ...nats.JSOpt) (*nats.ConsumerInfo, error)
}

// EnsureLeadStream creates the LEADS stream and its durable notifier consumer when missing.
func EnsureLeadStream(js StreamManager) error {
	if _, err := js.StreamInfo(model.LeadStreamName); err != nil {
		if !errors.Is(err, nats.ErrStreamNotFound) {
			return fmt.Errorf("nats: lookup stream %s: %w", model.LeadStreamName, err)
		}
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     model.LeadStreamName,
			Subjects: []string{model.LeadStreamSubject},
			MaxBytes: model.LeadStreamMaxBytes,
			Storage:  nats.FileStorage,
		})
		if err != nil {
			return fmt.Errorf("nats: create stream %s: %w", model.LeadStreamName, err)
		}
	}

	if _, err := js.ConsumerInfo(model.LeadStreamName, model.LeadConsumerName); err != nil {
		if !errors.Is(err, nats.ErrConsumerNotFound) {
			return fmt.Errorf("nats: lookup consumer %s: %w", model.LeadConsumerName, err)
		}
		_, err = js.AddConsumer(model.LeadStreamName, &nats.ConsumerConfig{
			Durable:       model.LeadConsumerName,
			AckPolicy:     nats.AckExplicitPolicy,
			FilterSubject: model.LeadStreamSubject,
			MaxDeliver:    leadMaxDeliver,
			AckWait:       leadAckWait,
		})
		if err != nil {
			return fmt.Errorf("nats: create consumer %s: %w", model.LeadConsumerName, err)
		}
	}
	return nil
}

const (
	// A lead that still cannot be mailed after this many tries stays in Postgres only.
	leadMaxDeliver = 10
	leadAckWait    = time.Minute
)

// URL returns the nats:// address for cfg.
func URL(cfg config.NATSConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 4222
	}
	return fmt.Sprintf("nats://%s:%d", host, port)
}
