package publishers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/salaryhelper/salaryhelper-client/internal/logger"
)

// Builder turns one config entry into a sink.
type Builder func(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error)

// Builders maps a sink type to its Builder.
type Builders map[string]Builder

// DefaultBuilders knows every sink type in this package.
func DefaultBuilders() Builders {
	return Builders{
		TypeHTTP:   newHTTPPublisher,
		TypeSQS:    newSQSPublisher,
		TypeSNS:    newSNSPublisher,
		TypePubSub: newPubSubPublisher,
	}
}

// Build creates the sink for cfg.
func (b Builders) Build(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	build, ok := b[strings.ToLower(cfg.Type)]
	if !ok || build == nil {
		return nil, fmt.Errorf("publisher %q: no builder for type %q", cfg.ID, cfg.Type)
	}
	return build(ctx, cfg, logger.Ensure(log))
}

// BuildAll builds every entry. On failure the sinks built so far are closed.
func BuildAll(ctx context.Context, b Builders, cfgs []PublisherConfig, log logger.Logger) ([]Publisher, error) {
	pubs := make([]Publisher, 0, len(cfgs))
	for _, cfg := range cfgs {
		pub, err := b.Build(ctx, cfg, log)
		if err != nil {
			return nil, errors.Join(err, NewFanout(pubs).Close())
		}
		pubs = append(pubs, pub)
	}
	return pubs, nil
}

// FromFile builds a Fanout over the enabled entries of path. An empty path
// yields an empty Fanout.
func FromFile(ctx context.Context, path string, log logger.Logger) (*Fanout, error) {
	if strings.TrimSpace(path) == "" {
		return NewFanout(nil), nil
	}
	f, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers: %w", err)
	}
	pubs, err := BuildAll(ctx, DefaultBuilders(), f.Enabled(), log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	return NewFanout(pubs), nil
}
