package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"cv-optimizer-backend/internal/analytics"
	"cv-optimizer-backend/internal/dataset"
	"cv-optimizer-backend/internal/enrich"
	"cv-optimizer-backend/internal/history"
	"cv-optimizer-backend/internal/llm"
	"cv-optimizer-backend/internal/llm/gemini"
	"cv-optimizer-backend/internal/optimize"
	"cv-optimizer-backend/internal/rewrite"
	"cv-optimizer-backend/internal/scrape"
	"cv-optimizer-backend/internal/shared/config"
	"cv-optimizer-backend/internal/shared/server/middleware"
	"cv-optimizer-backend/internal/shared/server/respond"
	"cv-optimizer-backend/internal/shared/telemetry"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	svc, err := BuildService(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	handler := optimize.NewHandler(svc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	handler.RegisterRoutes(api)

	return r, nil
}

// BuildService wires the pipeline dependencies from configuration. The
// analytics mirror is attached only when a database path is configured.
func BuildService(ctx context.Context, cfg config.Config) (*optimize.Service, error) {
	generator, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	client := llm.WithRetry(generator)

	var analyticsSink optimize.AnalyticsSink
	if cfg.AnalyticsDBPath != "" {
		db, err := analytics.Open(cfg.AnalyticsDBPath)
		if err != nil {
			telemetry.Warn("analytics.open_failed", map[string]any{
				"path":  cfg.AnalyticsDBPath,
				"error": err.Error(),
			})
		} else {
			analyticsSink = db
		}
	}

	scraper := scrape.New(
		scrape.WithRenderTimeout(cfg.ScrapeTimeout),
		scrape.WithLimiter(newScraperLimiter()),
	)

	return &optimize.Service{
		Scraper:   scraper,
		Enricher:  &enrich.Enricher{LLM: client},
		Rewriter:  &rewrite.Rewriter{LLM: client},
		Dataset:   dataset.NewStore(cfg.DatasetPath),
		History:   history.NewLog(cfg.HistoryPath),
		Analytics: analyticsSink,
		Artifacts: &optimize.ArtifactWriter{Dir: cfg.DataDir},
	}, nil
}

func newScraperLimiter() *rate.Limiter {
	// One page render per second, small burst. LinkedIn throttles
	// aggressively beyond that.
	return rate.NewLimiter(rate.Limit(1), 2)
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
