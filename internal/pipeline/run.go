package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/voice-bridge/internal/progress"
)

// run tracks the state of one workflow execution: its temp directory
// and every intermediate artifact produced so far. cleanup releases all
// of it unconditionally, however far the chain got.
type run struct {
	o         *implOrchestrator
	id        string
	username  string
	workflow  string
	tempDir   string
	artifacts []string
}

func (o *implOrchestrator) newRun(ctx context.Context, username, workflow string) (*run, error) {
	if err := os.MkdirAll(o.cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	tempDir, err := os.MkdirTemp(o.cfg.Paths.Temp, "run-*")
	if err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}

	r := &run{
		o:        o,
		id:       uuid.NewString(),
		username: username,
		workflow: workflow,
		tempDir:  tempDir,
	}

	o.logger.Info(ctx, "[%s] Starting %s run for %s", r.id, workflow, username)
	return r, nil
}

// track registers an intermediate artifact for unconditional deletion
// at the end of the run.
func (r *run) track(path string) {
	r.artifacts = append(r.artifacts, path)
}

// cleanup deletes tracked artifacts in reverse production order, then
// the run's temp directory. Runs on every exit path.
func (r *run) cleanup(ctx context.Context) {
	for i := len(r.artifacts) - 1; i >= 0; i-- {
		path := r.artifacts[i]
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			r.o.logger.Warn(ctx, "[%s] Failed to delete artifact %s: %v", r.id, path, err)
		}
	}
	if err := os.RemoveAll(r.tempDir); err != nil {
		r.o.logger.Warn(ctx, "[%s] Failed to remove run dir %s: %v", r.id, r.tempDir, err)
	}
}

// stageCtx bounds one external call.
func (r *run) stageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.o.stageTimeout)
}

func (r *run) publish(stage, status, message string) {
	if r.o.deps.Publisher == nil {
		return
	}
	r.o.deps.Publisher.Publish(r.username, progress.Event{
		RunID:    r.id,
		Workflow: r.workflow,
		Stage:    stage,
		Status:   status,
		Message:  message,
	})
}

// fail wraps err as the run's terminal StageError and emits the
// user-visible diagnostic.
func (r *run) fail(ctx context.Context, stage string, kind Kind, err error) error {
	stageErr := &StageError{Stage: stage, Kind: kind, Err: err}
	r.o.logger.Error(ctx, "[%s] %v", r.id, stageErr)
	r.publish(stage, "failed", stageErr.Message())
	return stageErr
}
