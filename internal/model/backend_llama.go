//go:build llama

package model

import (
	"context"
	"errors"
	"runtime"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

const defaultCtxSize = 2048

// llamaGenerator wraps a loaded llama.cpp model. Predict shares C-side state,
// so callers must not invoke Generate concurrently; the chat pipeline
// serializes access.
type llamaGenerator struct {
	model   *llama.LLama
	threads int
}

// newGenerator loads the model file and returns the shared generator.
func newGenerator(path string, ctxSize, threads int) (Generator, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	if ctxSize <= 0 {
		ctxSize = defaultCtxSize
	}
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	m, err := llama.New(path, llama.SetContext(ctxSize))
	if err != nil {
		return nil, err
	}
	return &llamaGenerator{model: m, threads: threads}, nil
}

func (g *llamaGenerator) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	// Bridge cancellation through the token callback: returning false stops
	// the prediction loop at the next token boundary.
	g.model.SetTokenCallback(func(string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	})
	po := []llama.PredictOption{
		llama.SetTokens(max(1, p.MaxTokens)),
		llama.SetThreads(g.threads),
		llama.SetTemperature(float32(p.Temperature)),
		llama.SetTopK(p.TopK),
		llama.SetTopP(float32(p.TopP)),
		llama.SetPenalty(float32(p.RepeatPenalty)),
	}
	text, err := g.model.Predict(prompt, po...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	return text, nil
}
