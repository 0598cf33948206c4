package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/logger"
	"github.com/bnema/ihaveaplan/internal/ports"
	"github.com/google/uuid"
)

const (
	DefaultPollInterval  = time.Second
	threadReleaseTimeout = 30 * time.Second
)

// RunOptions bounds the wait for a run. A zero Timeout leaves the bound to
// the caller's context.
type RunOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
}

type PromptRequest struct {
	AssistantID  string
	Prompt       string
	Instructions string
}

// Orchestrator performs one prompt/response exchange on a fresh thread and
// releases the thread on every exit path once it exists.
type Orchestrator struct {
	backend ports.ConversationBackend
	opts    RunOptions
	log     *logger.Logger
}

func NewOrchestrator(backend ports.ConversationBackend, opts RunOptions, log *logger.Logger) *Orchestrator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Orchestrator{backend: backend, opts: opts, log: log}
}

func (o *Orchestrator) RunPrompt(ctx context.Context, req PromptRequest) (string, error) {
	if req.AssistantID == "" {
		return "", &domain.ValidationError{Field: "assistant", Reason: "no persona configured, upload a knowledge file first"}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", &domain.ValidationError{Field: "prompt", Reason: "must not be empty"}
	}

	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}

	log := o.log.With("orchestration_id", uuid.NewString(), "assistant_id", req.AssistantID)

	threadID, err := o.backend.CreateThread(ctx)
	if err != nil {
		return "", domain.Upstream("create thread", err)
	}
	log = log.With("thread_id", threadID)
	log.Debug("thread created")
	defer o.releaseThread(ctx, log, threadID)

	if err := o.backend.PostMessage(ctx, threadID, req.Prompt); err != nil {
		return "", domain.Upstream("post message", err)
	}

	run, err := o.backend.StartRun(ctx, domain.StartRunRequest{
		ThreadID:     threadID,
		AssistantID:  req.AssistantID,
		Instructions: req.Instructions,
	})
	if err != nil {
		return "", domain.Upstream("start run", err)
	}
	log.Debug("run started", "run_id", run.ID, "status", run.Status)

	run, err = o.awaitRun(ctx, log, threadID, run)
	if err != nil {
		return "", err
	}
	if run.Status != domain.RunStatusCompleted {
		cause := fmt.Errorf("%w: status %s", domain.ErrRunNotCompleted, run.Status)
		if run.LastError != "" {
			cause = fmt.Errorf("%w: status %s: %s", domain.ErrRunNotCompleted, run.Status, run.LastError)
		}
		return "", &domain.UpstreamError{Op: "run " + run.ID, Err: cause}
	}

	messages, err := o.backend.ListMessages(ctx, domain.ListMessagesRequest{
		ThreadID: threadID,
		Limit:    1,
		Order:    domain.OrderDesc,
	})
	if err != nil {
		return "", domain.Upstream("list messages", err)
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("thread %s: %w", threadID, domain.ErrEmptyResponse)
	}

	var b strings.Builder
	for _, text := range messages[0].Texts {
		b.WriteString(text)
		b.WriteString("\n")
	}

	log.Info("assistant responded", "run_id", run.ID, "bytes", b.Len())
	return b.String(), nil
}

func (o *Orchestrator) awaitRun(ctx context.Context, log *logger.Logger, threadID string, run domain.Run) (domain.Run, error) {
	for run.Status.Pending() {
		timer := time.NewTimer(o.opts.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return run, domain.Upstream("wait for run "+run.ID, ctx.Err())
		case <-timer.C:
		}

		next, err := o.backend.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return run, domain.Upstream("get run", err)
		}
		if next.ID == "" {
			next.ID = run.ID
		}
		if next.Status != run.Status {
			log.Debug("run status changed", "run_id", next.ID, "from", run.Status, "to", next.Status)
		}
		run = next
	}

	return run, nil
}

func (o *Orchestrator) releaseThread(ctx context.Context, log *logger.Logger, threadID string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), threadReleaseTimeout)
	defer cancel()

	if err := o.backend.DeleteThread(releaseCtx, threadID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Warn("release thread failed", "error", err)
		return
	}
	log.Debug("thread released")
}
