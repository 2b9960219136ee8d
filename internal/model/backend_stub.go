//go:build !llama

package model

import "errors"

// This file provides a no-CGO stub for the llama backend. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real backend lives in backend_llama.go (tagged 'llama').

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

// newGenerator fails fast without the 'llama' build tag. The loader logs the
// error and the handle stays unpublished, so every request sees not-ready
// rather than mocked output.
func newGenerator(path string, ctxSize, threads int) (Generator, error) {
	return nil, errors.New("llama support not built (missing 'llama' build tag)")
}
