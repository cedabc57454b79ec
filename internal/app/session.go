package app

import (
	"go.trai.ch/revive/internal/core/domain"
	"go.trai.ch/revive/internal/core/ports"
	"go.trai.ch/revive/internal/engine/reload"
)

// SessionRunner bundles the per-session engine components: the entry
// runner, the restart orchestrator, and the change classifier, all sharing
// one registry.
type SessionRunner struct {
	registry   *domain.Registry
	runner     *reload.EntryRunner
	orch       *reload.Orchestrator
	classifier *reload.Classifier
}

// NewSessionRunner assembles the engine for one watch session.
func NewSessionRunner(loader ports.Loader, registry *domain.Registry, logger ports.Logger, entry string) *SessionRunner {
	runner := reload.NewRunner(loader, registry, logger, entry)
	orch := reload.NewOrchestrator(reload.NewInvalidator(registry, logger), runner, logger)
	return &SessionRunner{
		registry:   registry,
		runner:     runner,
		orch:       orch,
		classifier: reload.NewClassifier(entry, registry, orch, logger),
	}
}

// Registry returns the session's module registry.
func (s *SessionRunner) Registry() *domain.Registry { return s.registry }

// Runner returns the session's entry runner.
func (s *SessionRunner) Runner() *reload.EntryRunner { return s.runner }

// Orchestrator returns the session's restart orchestrator.
func (s *SessionRunner) Orchestrator() *reload.Orchestrator { return s.orch }

// Classifier returns the session's change classifier.
func (s *SessionRunner) Classifier() *reload.Classifier { return s.classifier }
