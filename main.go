package main

import (
	"context"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"

	"essaydesk/internal/correct"
)

func main() {
	_ = godotenv.Load()

	app := newAppFromEnv()
	logInfo("Starting essay checker in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])

	db, err := openStore(getEnvString("DB_PATH", "data/essays.db"))
	if err != nil {
		logFatal("Failed to open essay database: %v", err)
	}
	defer db.Close()
	app.Store = db

	logInfo("Instantiating corrector...")
	corrector, err := correct.New(os.Getenv("CORRECTOR_CMD"),
		correct.WithTimeout(getEnvDuration("CORRECTOR_TIMEOUT", time.Minute)))
	if err != nil {
		logFatal("Failed to set up corrector: %v", err)
	}
	app.Corrector = corrector
	logInfo("Corrector %s loaded successfully", corrector.Name())

	templates, static := "templates/*.html", "./static"
	if app.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		templates, static = "dist/templates/*.html", "./dist/static"
	} else {
		logInfo("Serving development assets from source directories")
	}
	router := app.setupRouter(templates, static)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go app.runRetention(ctx)

	app.startServer(ctx, router)
}

// newAppFromEnv builds the App configuration from environment variables.
func newAppFromEnv() *App {
	return &App{
		IsProduction:    os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		Port:            getEnvString("PORT", "8080"),
		CookieMaxAge:    getEnvDuration("COOKIE_MAX_AGE", 30*24*time.Hour),
		StaticCacheAge:  getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		Retention:       getEnvDuration("ESSAY_RETENTION", 0),
		CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", time.Hour),
		PDFFont:         getEnvString("PDF_FONT", ""),
		RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 10),
		LimiterMap:      make(map[string]*rate.Limiter),
		StartTime:       time.Now(),
	}
}

// setupRouter wires middleware, templates, static files and routes.
func (app *App) setupRouter(templateGlob, staticDir string) *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif", ".pdf"}),
		ginGzip.WithExcludedPaths([]string{"/download"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(requestIDMiddleware())
	router.Use(func(c *gin.Context) {
		applyCacheHeaders(c, app.IsProduction, app.StaticCacheAge)
	})

	router.SetFuncMap(template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
	})
	router.LoadHTMLGlob(templateGlob)
	router.Static("/static", staticDir)

	router.GET(RouteHome, app.indexHandler)
	router.POST(RouteHome, app.rateLimitMiddleware(), app.correctHandler)
	router.POST(RouteSave, app.rateLimitMiddleware(), app.saveHandler)
	router.GET(RouteHistory, app.historyHandler)
	router.GET(RouteDownload, app.downloadHandler)
	router.GET(RouteHealthz, app.healthzHandler)
	return router
}

// startServer serves until ctx is cancelled, then shuts down gracefully.
func (app *App) startServer(ctx context.Context, router *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + app.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		logInfo("Shutdown signal received, shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", app.Port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}

// applyCacheHeaders lets browsers cache static assets in production and
// disables caching for everything else.
func applyCacheHeaders(c *gin.Context, production bool, staticAge time.Duration) {
	if production && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(staticAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}
