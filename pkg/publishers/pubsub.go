package publishers

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/salaryhelper/salaryhelper-client/internal/logger"
)

type pubsubSink struct {
	id     string
	client *pubsub.Client
	topic  *pubsub.Topic
	log    logger.Logger
}

func newPubSubPublisher(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("publisher %q: pubsub block missing", cfg.ID)
	}

	var opts []option.ClientOption
	if cfg.PubSub.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.PubSub.CredentialsFile))
	}
	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("pubsub client for %s: %w", cfg.PubSub.ProjectID, err)
	}

	topic := client.Topic(cfg.PubSub.Topic)
	// Session events are rare; send each one immediately.
	topic.PublishSettings.CountThreshold = 1

	return &pubsubSink{id: cfg.ID, client: client, topic: topic, log: logger.Ensure(log)}, nil
}

func (p *pubsubSink) ID() string   { return p.id }
func (p *pubsubSink) Type() string { return TypePubSub }

// Publish waits for the server to acknowledge the message.
func (p *pubsubSink) Publish(ctx context.Context, evt Event) error {
	body, attrs, err := evt.encode()
	if err != nil {
		return err
	}
	msgID, err := p.topic.Publish(ctx, &pubsub.Message{Data: body, Attributes: attrs}).Get(ctx)
	if err != nil {
		err = fmt.Errorf("pubsub publish: %w", err)
		reportDelivery(p.log, p, evt, nil, err)
		return err
	}
	reportDelivery(p.log, p, evt, msgID, nil)
	return nil
}

// Close flushes pending messages and releases the client.
func (p *pubsubSink) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
