package model

import (
	"context"
	"sync"
	"testing"
)

type fakeGenerator struct {
	reply string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	return f.reply, nil
}

func TestHandleStartsNotReady(t *testing.T) {
	h := NewHandle()
	if h.IsReady() {
		t.Fatalf("new handle should not be ready")
	}
	if h.Get() != nil {
		t.Fatalf("Get before publish should return nil")
	}
}

func TestHandlePublishMakesReady(t *testing.T) {
	h := NewHandle()
	g := &fakeGenerator{reply: "ok"}
	if !h.Publish(g) {
		t.Fatalf("first publish should succeed")
	}
	if !h.IsReady() {
		t.Fatalf("handle should be ready after publish")
	}
	if h.Get() != Generator(g) {
		t.Fatalf("Get should return the published instance")
	}
}

func TestHandlePublishOnlyFirstWins(t *testing.T) {
	h := NewHandle()
	first := &fakeGenerator{reply: "first"}
	second := &fakeGenerator{reply: "second"}
	if !h.Publish(first) {
		t.Fatalf("first publish should succeed")
	}
	if h.Publish(second) {
		t.Fatalf("second publish should be rejected")
	}
	if h.Get() != Generator(first) {
		t.Fatalf("handle should keep the first instance")
	}
}

func TestHandleConcurrentReaders(t *testing.T) {
	h := NewHandle()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if h.IsReady() {
					if h.Get() == nil {
						t.Error("ready handle returned nil instance")
						return
					}
				}
			}
		}()
	}
	h.Publish(&fakeGenerator{})
	wg.Wait()
}
