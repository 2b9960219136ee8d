package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chatd/internal/chat"
	"chatd/internal/config"
	"chatd/internal/httpapi"
	"chatd/internal/model"
	"chatd/internal/session"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:           "chatd",
		Short:         "Local chat-completion daemon over a single GGUF model",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfgPath)
		},
	}
	fl := cmd.Flags()
	fl.String("addr", envOr("CHATD_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	fl.String("model-name", envOr("CHATD_MODEL", "ggml-gpt4all-j-v1.3-groovy.bin"), "Model artifact filename")
	fl.String("model-dir", envOr("CHATD_MODEL_DIR", "~/.cache/gpt4all"), "Local model cache directory")
	fl.String("model-url", os.Getenv("CHATD_MODEL_URL"), "Override model download URL")
	fl.Int("ctx-size", 2048, "Model context window size in tokens")
	fl.Int("threads", 0, "CPU threads for inference (0 = all cores)")
	fl.Int("history-limit", 0, "Turns retained per session (0 = default 10)")
	fl.String("log-level", envOr("CHATD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	fl.StringVar(&cfgPath, "config", "", "Optional config file (.yaml/.json/.toml); flags take precedence")
	return cmd
}

// resolve prefers an explicitly-set flag, then the config file, then the flag
// default (which already folds in environment variables).
func resolveStr(cmd *cobra.Command, name, fileVal string) string {
	if !cmd.Flags().Changed(name) && fileVal != "" {
		return fileVal
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func resolveInt(cmd *cobra.Command, name string, fileVal int) int {
	if !cmd.Flags().Changed(name) && fileVal != 0 {
		return fileVal
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func run(cmd *cobra.Command, cfgPath string) error {
	var fileCfg config.Config
	if cfgPath != "" {
		var err error
		fileCfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	addr := resolveStr(cmd, "addr", fileCfg.Addr)
	modelName := resolveStr(cmd, "model-name", fileCfg.ModelName)
	modelDir := resolveStr(cmd, "model-dir", fileCfg.ModelDir)
	modelURL := resolveStr(cmd, "model-url", fileCfg.ModelURL)
	ctxSize := resolveInt(cmd, "ctx-size", fileCfg.CtxSize)
	threads := resolveInt(cmd, "threads", fileCfg.Threads)
	historyLimit := resolveInt(cmd, "history-limit", fileCfg.HistoryLimit)
	logLevel := resolveStr(cmd, "log-level", fileCfg.LogLevel)

	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
	httpapi.SetLogger(logger)
	if fileCfg.MaxBodyBytes > 0 {
		httpapi.SetMaxBodyBytes(fileCfg.MaxBodyBytes)
	}
	httpapi.SetCORSOptions(fileCfg.CORSEnabled, fileCfg.CORSAllowedOrigins)

	// Base context cancels the loader and in-flight generations on shutdown.
	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	httpapi.SetBaseContext(baseCtx)

	handle := model.NewHandle()
	loader := model.NewLoader(handle, model.LoaderConfig{
		ModelName: modelName,
		ModelDir:  modelDir,
		ModelURL:  modelURL,
		CtxSize:   ctxSize,
		Threads:   threads,
	}, logger)
	// Model initialization happens off the request path; the server starts
	// serving immediately and reports not-ready until the loader publishes.
	go loader.Run(baseCtx)

	store := session.NewStoreWithLimit(historyLimit)
	pipeline := chat.New(handle, store, logger)

	srv := &http.Server{Addr: addr, Handler: httpapi.NewMux(pipeline)}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("model", modelName).Msg("chatd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancel()
	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
