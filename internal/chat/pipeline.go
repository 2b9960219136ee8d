// Package chat orchestrates a single generation request: readiness gate,
// history bookkeeping, prompt flattening, and the serialized call into the
// model capability.
package chat

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"chatd/internal/model"
	"chatd/internal/session"
	"chatd/pkg/types"
)

// Pipeline processes generation requests against the shared model handle and
// the per-session conversation store.
type Pipeline struct {
	handle *model.Handle
	store  *session.Store
	log    zerolog.Logger
	// genSlot serializes inference: llama.cpp prediction is not reentrant on
	// a single model, so exactly one generation runs at a time.
	genSlot chan struct{}
}

// New wires a pipeline to the given handle and store.
func New(h *model.Handle, s *session.Store, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		handle:  h,
		store:   s,
		log:     log,
		genSlot: make(chan struct{}, 1),
	}
}

// Ready reports whether the model has finished its one-time initialization.
func (p *Pipeline) Ready() bool { return p.handle.IsReady() }

// Generate runs one request through the pipeline. The readiness check happens
// before any history mutation, so a request rejected while the model is
// loading leaves the session untouched and a later retry starts clean.
func (p *Pipeline) Generate(ctx context.Context, sessionID string, req types.GenerateRequest) (types.GenerateResponse, error) {
	if !p.handle.IsReady() {
		return types.GenerateResponse{}, notReadyError{}
	}
	req = req.WithDefaults()

	p.store.Append(sessionID, types.Turn{Role: types.RoleUser, Content: req.Prompt})
	prompt := flattenHistory(p.store.Get(sessionID))

	select {
	case p.genSlot <- struct{}{}:
	case <-ctx.Done():
		p.store.DropLast(sessionID)
		return types.GenerateResponse{}, ctx.Err()
	}
	start := time.Now()
	text, err := p.handle.Get().Generate(ctx, prompt, model.Params{
		MaxTokens:     req.MaxTokens,
		Temperature:   req.Temperature,
		TopK:          req.TopK,
		TopP:          req.TopP,
		RepeatPenalty: req.RepeatPenalty,
	})
	elapsed := time.Since(start)
	<-p.genSlot
	if err != nil {
		// Roll the user turn back so a retry does not duplicate it.
		p.store.DropLast(sessionID)
		p.log.Error().Err(err).Str("session", sessionID).Msg("generation failed")
		return types.GenerateResponse{}, generationError{cause: err}
	}

	p.store.Append(sessionID, types.Turn{Role: types.RoleAssistant, Content: text})
	return types.GenerateResponse{
		Response:       text,
		Conversation:   p.store.Get(sessionID),
		GenerationTime: math.Round(elapsed.Seconds()*100) / 100,
	}, nil
}

// Reset clears the session's conversation history.
func (p *Pipeline) Reset(sessionID string) {
	p.store.Reset(sessionID)
}
