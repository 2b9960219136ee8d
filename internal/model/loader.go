package model

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// defaultModelBaseURL is used when no explicit model URL is configured.
const defaultModelBaseURL = "https://gpt4all.io/models/"

// LoaderConfig describes where the model artifact lives and how to build the
// generator from it.
type LoaderConfig struct {
	// ModelName is the artifact filename, e.g. "ggml-gpt4all-j-v1.3-groovy.bin".
	ModelName string
	// ModelDir is the local cache directory; a leading '~' is expanded.
	ModelDir string
	// ModelURL overrides the download location. If empty, the artifact is
	// fetched from defaultModelBaseURL + ModelName.
	ModelURL string
	CtxSize  int
	Threads  int
}

// Loader performs the one-time model initialization off the request path:
// ensure the artifact exists locally (downloading if needed), construct the
// generator, and publish it into the handle. Any failure leaves the handle
// permanently unpublished; there is no retry short of a process restart.
type Loader struct {
	handle *Handle
	cfg    LoaderConfig
	log    zerolog.Logger

	// Overridable in tests.
	construct func(path string, ctxSize, threads int) (Generator, error)
	fetch     func(ctx context.Context, url, dest string) error
}

// NewLoader wires a loader to the given handle.
func NewLoader(h *Handle, cfg LoaderConfig, log zerolog.Logger) *Loader {
	return &Loader{
		handle:    h,
		cfg:       cfg,
		log:       log,
		construct: newGenerator,
		fetch:     downloadFile,
	}
}

// Run executes the load sequence. It is meant to be launched as a goroutine
// at process start; the outcome is only observable through Handle.IsReady.
// Shutdown cancels an in-flight download via ctx.
func (l *Loader) Run(ctx context.Context) {
	path, err := l.modelPath()
	if err != nil {
		l.log.Error().Err(err).Msg("resolve model path")
		return
	}
	if !pathExists(path) {
		url := l.cfg.ModelURL
		if url == "" {
			url = defaultModelBaseURL + l.cfg.ModelName
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			l.log.Error().Err(err).Str("dir", filepath.Dir(path)).Msg("create model dir")
			return
		}
		l.log.Info().Str("model", l.cfg.ModelName).Str("url", url).Msg("downloading model")
		if err := l.fetch(ctx, url, path); err != nil {
			l.log.Error().Err(err).Str("model", l.cfg.ModelName).Msg("model download failed")
			return
		}
	}
	l.log.Info().Str("path", path).Msg("initializing model")
	gen, err := l.construct(path, l.cfg.CtxSize, l.cfg.Threads)
	if err != nil {
		l.log.Error().Err(err).Str("path", path).Msg("model initialization failed")
		return
	}
	if !l.handle.Publish(gen) {
		l.log.Warn().Msg("model already published, discarding duplicate load")
		return
	}
	l.log.Info().Str("model", l.cfg.ModelName).Msg("model initialized successfully")
}

func (l *Loader) modelPath() (string, error) {
	if strings.TrimSpace(l.cfg.ModelName) == "" {
		return "", errors.New("model name is empty")
	}
	dir, err := expandHome(l.cfg.ModelDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, l.cfg.ModelName), nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/.cache/gpt4all
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// pathExists checks if the given path exists.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
