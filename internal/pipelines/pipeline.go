// Package pipelines runs ordered, named steps over a shared state value.
// Steps are synchronous; each failed step aborts the run.
package pipelines

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Step is one named unit of pipeline work mutating the shared state.
type Step[T any] struct {
	Name string
	Run  func(ctx context.Context, state *T) error
}

// Pipeline executes its steps in order. When a debug directory is set, a
// JSON snapshot of the state is written after every step.
type Pipeline[T any] struct {
	name     string
	runID    uuid.UUID
	steps    []Step[T]
	debugDir string
	logger   *logrus.Entry
}

func New[T any](name string, debugDir string) *Pipeline[T] {
	runID := uuid.New()
	return &Pipeline[T]{
		name:     name,
		runID:    runID,
		debugDir: debugDir,
		logger: logrus.WithFields(logrus.Fields{
			"pipeline": name,
			"run_id":   runID,
		}),
	}
}

func (p *Pipeline[T]) AddStep(name string, run func(ctx context.Context, state *T) error) {
	p.steps = append(p.steps, Step[T]{Name: name, Run: run})
}

// Logger returns the run-scoped logger for steps that want to log under the
// pipeline's fields.
func (p *Pipeline[T]) Logger() *logrus.Entry {
	return p.logger
}

func (p *Pipeline[T]) Run(ctx context.Context, state *T) error {
	p.logger.WithFields(logrus.Fields{
		"steps": len(p.steps),
	}).Debug("Starting pipeline")

	for index, step := range p.steps {
		p.logger.WithFields(logrus.Fields{
			"step": step.Name,
		}).Info("Running step")

		if err := step.Run(ctx, state); err != nil {
			return fmt.Errorf("step %s failed: %w", step.Name, err)
		}

		if len(p.debugDir) > 0 {
			if err := p.dumpDebug(index+1, step.Name, state); err != nil {
				p.logger.WithError(err).Warn("Failed to write debug snapshot")
			}
		}
	}

	p.logger.Debug("Completed pipeline")
	return nil
}

func (p *Pipeline[T]) dumpDebug(index int, stepName string, state *T) error {
	if err := os.MkdirAll(p.debugDir, 0o755); err != nil {
		return fmt.Errorf("failed to create debug directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	filename := filepath.Join(p.debugDir, fmt.Sprintf("%02d_%s.json", index, stepName))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write debug snapshot: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"file": filename,
	}).Debug("Dumped debug snapshot")
	return nil
}
