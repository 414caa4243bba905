package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mohammad-safakhou/finadvisor/config"
	"github.com/mohammad-safakhou/finadvisor/internal/advisor"
	"github.com/mohammad-safakhou/finadvisor/internal/fraud"
	"github.com/mohammad-safakhou/finadvisor/internal/session"
	filestore "github.com/mohammad-safakhou/finadvisor/internal/session/file"
	memorystore "github.com/mohammad-safakhou/finadvisor/internal/session/memory"
	pgstore "github.com/mohammad-safakhou/finadvisor/internal/session/postgres"
	redisstore "github.com/mohammad-safakhou/finadvisor/internal/session/redis"
	"github.com/mohammad-safakhou/finadvisor/internal/speech"
	"github.com/mohammad-safakhou/finadvisor/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run wires every component from configuration and serves the HTTP API until
// the listener fails.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	var tele *telemetry.Telemetry
	if cfg.Telemetry.Enabled {
		tele = telemetry.New(cfg.Telemetry.Namespace)
	}

	ctx := context.Background()
	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Fallback chain: local runtime first, hosted API second, rules terminal.
	var local, hosted advisor.TextGenerator
	if cfg.LLM.Local.Enabled {
		local = advisor.NewLocalRuntime(cfg.LLM.Local, nil)
	}
	if cfg.LLM.Hosted.APIKey != "" {
		hosted = advisor.NewHostedAPI(cfg.LLM.Hosted)
	}
	orchLogger := log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	orch := advisor.NewOrchestrator(local, hosted, cfg.LLM.Local.MinUsefulChars, orchLogger, tele)

	api := e.Group("/api")
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	ch := &ChatHandler{Generator: orch, Logger: baseLogger}
	ch.Register(api)

	sh := &SessionsHandler{Store: st, Backend: cfg.Storage.Backend, Telemetry: tele}
	sh.Register(api.Group("/sessions"))

	fh := &FinanceHandler{}
	fh.Register(api)

	sph := &SpeechHandler{
		Transcriber: speech.NewTranscriber(cfg.Speech.Deepgram),
		Synthesizer: speech.NewSynthesizer(cfg.Speech.ElevenLabs),
		Logger:      baseLogger,
	}
	sph.Register(api.Group("/speech"))

	frh := &FraudHandler{Detector: fraud.NewDetector(cfg.Fraud.Groq)}
	frh.Register(api.Group("/fraud"))

	addr := cfg.Server.Address
	if addr == "" {
		addr = ":10002"
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

// newStore builds the session store selected by storage.backend. The postgres
// backend gets its schema migrated before first use.
func newStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return memorystore.NewStore(), nil
	case "file":
		return filestore.NewStore(cfg.Storage.File.Path), nil
	case "redis":
		return redisstore.NewStore(cfg.Storage.Redis.Addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB), nil
	case "postgres":
		dsn, err := cfg.Storage.Postgres.DSN()
		if err != nil {
			return nil, err
		}
		if err := Migrate("file://migrations", dsn, "up", 0); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pgstore.NewWithDSN(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported storage.backend: %s", cfg.Storage.Backend)
	}
}
