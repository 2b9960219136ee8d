package model

import "sync/atomic"

// Handle is the process-wide holder for the loaded model. It starts empty and
// is populated exactly once by the loader; every request reads it. The atomic
// pointer gives readers that observe IsReady()==true a fully constructed
// Generator (publish happens-before any subsequent load).
type Handle struct {
	inst atomic.Pointer[published]
}

type published struct {
	gen Generator
}

// NewHandle returns an empty, not-yet-ready handle.
func NewHandle() *Handle { return &Handle{} }

// IsReady reports whether the model has been published. Non-blocking and safe
// from any goroutine.
func (h *Handle) IsReady() bool { return h.inst.Load() != nil }

// Get returns the shared Generator, or nil if nothing has been published yet.
// Callers must check IsReady first; a nil return indicates a programming error
// in the calling pipeline, not a user-facing condition.
func (h *Handle) Get() Generator {
	p := h.inst.Load()
	if p == nil {
		return nil
	}
	return p.gen
}

// Publish installs the generator. Only the first call wins; later calls are
// no-ops and return false.
func (h *Handle) Publish(g Generator) bool {
	return h.inst.CompareAndSwap(nil, &published{gen: g})
}
