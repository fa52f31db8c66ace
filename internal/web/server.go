// Package web serves the review console page and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/Gappu824/aura-ai-hackathon/internal/app"
	"github.com/Gappu824/aura-ai-hackathon/internal/config"
	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"github.com/Gappu824/aura-ai-hackathon/internal/logger"
	"github.com/Gappu824/aura-ai-hackathon/internal/slots"
	"github.com/Gappu824/aura-ai-hackathon/internal/view"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

const pageTemplate = "page.html"

// ShutdownTimeout bounds graceful shutdown of the server.
const ShutdownTimeout = 5 * time.Second

// NewServer returns an http.Server serving the console on cfg.HTTPAddr.
func NewServer(cfg *config.Config, console *app.Console, log logger.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, console, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the gin engine with every console route registered.
func NewRouter(cfg *config.Config, console *app.Console, log logger.Logger) *gin.Engine {
	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	}

	h := &handlers{console: console, log: logger.Ensure(log)}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.log))
	if mw := corsMiddleware(cfg.CORSOrigins); mw != nil {
		router.Use(mw)
	}
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": cfg.AppName})
	})

	router.GET("/", h.page)
	router.POST("/input", h.saveInput)
	router.POST("/input/authenticity", h.inputAuthenticity)
	router.POST("/input/clarity", h.inputClarity)
	router.POST("/examples/:id/authenticity", h.exampleAuthenticity)
	router.POST("/overall/clarity", h.overallClarity)

	api := router.Group("/api/v1")
	api.GET("/state", h.state)
	api.POST("/input/authenticity", h.apiInputAuthenticity)
	api.POST("/input/clarity", h.apiInputClarity)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.DebugObj("http request", "http_request", map[string]any{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
	}
}

type handlers struct {
	console *app.Console
	log     logger.Logger
}

type reviewRequest struct {
	Review string `json:"review" form:"review"`
}

func (h *handlers) page(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplate, newPageData(h.console.Snapshot()))
}

func (h *handlers) saveInput(c *gin.Context) {
	h.console.SetInput(c.PostForm("review"))
	redirectHome(c)
}

func (h *handlers) inputAuthenticity(c *gin.Context) {
	h.console.SetInput(c.PostForm("review"))
	_, _ = h.console.AnalyzeInput(c.Request.Context())
	redirectHome(c)
}

func (h *handlers) inputClarity(c *gin.Context) {
	h.console.SetInput(c.PostForm("review"))
	_, _ = h.console.ClarifyInput(c.Request.Context())
	redirectHome(c)
}

func (h *handlers) exampleAuthenticity(c *gin.Context) {
	if _, err := h.console.AnalyzeExample(c.Request.Context(), c.Param("id")); errors.Is(err, app.ErrUnknownExample) {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	redirectHome(c)
}

func (h *handlers) overallClarity(c *gin.Context) {
	h.console.RefreshOverall(c.Request.Context())
	redirectHome(c)
}

func (h *handlers) state(c *gin.Context) {
	c.JSON(http.StatusOK, h.console.Snapshot())
}

func (h *handlers) apiInputAuthenticity(c *gin.Context) {
	h.apiInput(c, h.console.AnalyzeInput)
}

func (h *handlers) apiInputClarity(c *gin.Context) {
	h.apiInput(c, h.console.ClarifyInput)
}

func (h *handlers) apiInput(c *gin.Context, run func(context.Context) (slots.View, error)) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.console.SetInput(req.Review)
	v, err := run(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, v)
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, v)
	default:
		c.JSON(http.StatusBadGateway, v)
	}
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

type exampleCard struct {
	ID    string
	Label string
	Text  string
	Card  view.Card
}

type pageData struct {
	Product           string
	Batch             []string
	Input             string
	Overall           view.Card
	InputClarity      view.Card
	InputAuthenticity view.Card
	Examples          []exampleCard
	Refresh           bool
}

func newPageData(st app.State) pageData {
	d := pageData{
		Product:           st.Product,
		Batch:             st.Batch,
		Input:             st.Input,
		Overall:           view.NewCard(st.Overall),
		InputClarity:      view.NewCard(st.InputClarity),
		InputAuthenticity: view.NewCard(st.InputAuthenticity),
	}
	d.Refresh = d.Overall.Loading || d.InputClarity.Loading || d.InputAuthenticity.Loading
	for _, ex := range st.Examples {
		card := view.NewCard(ex.View)
		d.Refresh = d.Refresh || card.Loading
		d.Examples = append(d.Examples, exampleCard{ID: ex.ID, Label: ex.Label, Text: ex.Text, Card: card})
	}
	return d
}
