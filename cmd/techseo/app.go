package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/techseo"
	"github.com/aretw0/techseo/internal/config"
	"github.com/aretw0/techseo/internal/logging"
	loamAdapter "github.com/aretw0/techseo/pkg/adapters/loam"
	"github.com/aretw0/techseo/pkg/domain"
	"github.com/spf13/cobra"
)

// app bundles what every command needs.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	engine *techseo.Engine
}

// newApp loads the configuration, applies the persistent flags and builds
// the engine over the posts directory.
func newApp(cmd *cobra.Command, opts ...techseo.Option) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.PostsDir = dir
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Log.Level), cfg.Log.Format == "json")
	slog.SetDefault(logger)

	posts, err := loamAdapter.Open(cfg.PostsDir, loamAdapter.WithBaseURL(cfg.Site.Home))
	if err != nil {
		return nil, err
	}

	opts = append([]techseo.Option{
		techseo.WithLogger(logger),
		techseo.WithSite(cfg.Site),
		techseo.WithCrossPosting(cfg.CrossPosting.Enabled),
		techseo.WithLimits(cfg.CrossPosting.PlatformLimits()),
	}, opts...)
	engine, err := techseo.New(posts, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init engine: %w", err)
	}

	return &app{cfg: cfg, logger: logger, engine: engine}, nil
}

// post resolves the post named by a command argument.
func (a *app) post(cmd *cobra.Command, arg string) (*domain.Post, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid post id %q", arg)
	}
	return a.engine.Post(cmd.Context(), id)
}
