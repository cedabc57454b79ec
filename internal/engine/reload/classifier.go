package reload

import (
	"context"

	"go.trai.ch/revive/internal/core/domain"
	"go.trai.ch/revive/internal/core/ports"
)

// Classifier decides, per debounced change, whether it targets the entry
// point (full reload), a cached module (partial reload), or nothing the
// loaded program depends on (discarded). In the crashed state a re-edit of
// any previously seen path counts as a retry signal.
type Classifier struct {
	entry    string
	registry *domain.Registry
	orch     *Orchestrator
	logger   ports.Logger
}

// NewClassifier creates a classifier for the given resolved entry file.
func NewClassifier(entry string, registry *domain.Registry, orch *Orchestrator, logger ports.Logger) *Classifier {
	return &Classifier{
		entry:    entry,
		registry: registry,
		orch:     orch,
		logger:   logger,
	}
}

// Handle classifies one changed path and submits qualifying changes to the
// orchestrator. Paths are processed serially in arrival order.
func (c *Classifier) Handle(ctx context.Context, path string) {
	switch {
	case path == c.entry:
		c.logger.Debug("entry point changed: " + path)
		c.orch.Submit(ctx, Change{Path: path, Full: true})

	case c.registry.Has(path):
		c.logger.Debug("cached module changed: " + path)
		c.orch.Submit(ctx, Change{Path: path})

	case c.orch.Crashed() && c.orch.Recorded(path):
		c.logger.Debug("retrying after crash: " + path)
		c.orch.Submit(ctx, Change{Path: path})

	default:
		// Not relevant to the loaded program.
	}
}
