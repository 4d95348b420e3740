package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"mythus/internal/config"
	"mythus/internal/drafts"
	"mythus/internal/logging"
	"mythus/internal/scenes"
	"mythus/internal/services/screenplay"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) client() (*screenplay.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return screenplay.New(screenplay.Config{
		BaseURL:  cfg.API.BaseURL,
		APIToken: cfg.API.Token,
		Timeout:  time.Duration(cfg.API.RequestTimeout) * time.Second,
	})
}

// orchestrator builds a scene orchestrator for one screenplay. Callers own
// Close.
func (c *commandContext) orchestrator(screenplayID string) (*scenes.Orchestrator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	svc, err := c.client()
	if err != nil {
		return nil, err
	}
	return scenes.NewOrchestrator(scenes.Options{
		Service:         svc,
		Logger:          logger,
		ScreenplayID:    screenplayID,
		PageLimit:       cfg.Scenes.PageLimit,
		PreviewLength:   cfg.Scenes.PreviewLength,
		BulkParallelism: cfg.Scenes.BulkParallelism,
	})
}

// withDrafts opens the drafts store for the duration of fn.
func (c *commandContext) withDrafts(fn func(*drafts.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := drafts.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
