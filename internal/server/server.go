// Package server exposes the analytics registry as a small read-only
// HTTP API over a loaded log source.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mthomas46/jirassic-pack-sub000/internal/analytics"
	"github.com/mthomas46/jirassic-pack-sub000/internal/filter"
	"github.com/mthomas46/jirassic-pack-sub000/internal/parser"
	"github.com/mthomas46/jirassic-pack-sub000/internal/report"
	"github.com/mthomas46/jirassic-pack-sub000/internal/source"
)

// Server holds the Gin engine and the log source it serves.
type Server struct {
	engine *gin.Engine
	src    *source.Source
	port   string
}

// New creates the analytics API server.
func New(src *source.Source, port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		src:    src,
		port:   port,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"log_file":   s.src.Path(),
			"entries":    len(s.src.Entries()),
			"diagnostic": s.src.Diagnostic(),
		})
	})

	s.engine.GET("/api/summary", func(c *gin.Context) {
		c.JSON(http.StatusOK, analytics.Summary(s.src.Entries()))
	})

	// Registry listing: names, titles, headers, declared parameters.
	s.engine.GET("/api/analytics", func(c *gin.Context) {
		type listing struct {
			Key     string                `json:"key"`
			Title   string                `json:"title"`
			Headers []string              `json:"headers"`
			Params  []analytics.ParamSpec `json:"params"`
		}
		out := make([]listing, 0, len(analytics.Registry()))
		for _, a := range analytics.Registry() {
			out = append(out, listing{Key: a.Key, Title: a.Title, Headers: a.Headers, Params: a.Params})
		}
		c.JSON(http.StatusOK, out)
	})

	s.engine.GET("/api/analytics/:key", s.handleAnalytic)
}

func (s *Server) handleAnalytic(c *gin.Context) {
	a, ok := analytics.Lookup(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown analytic: " + c.Param("key")})
		return
	}

	params, err := queryParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := queryFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := a.Run(f.Apply(s.src.Entries()), params)
	c.JSON(http.StatusOK, report.Report{
		Type:    a.Title,
		Headers: a.Headers,
		Data:    result.Rows,
		Summary: result.Summary,
	})
}

// queryParams reads the analytic parameters from the query string,
// falling back to the registry defaults.
func queryParams(c *gin.Context) (analytics.Params, error) {
	params := analytics.DefaultParams

	if v := c.Query("interval"); v != "" {
		if v != analytics.IntervalHour && v != analytics.IntervalDay {
			return params, errBadParam("interval", v)
		}
		params.Interval = v
	}
	if v := c.Query("top_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errBadParam("top_n", v)
		}
		params.TopN = n
	}
	if v := c.Query("threshold"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, errBadParam("threshold", v)
		}
		params.Threshold = t
	}
	return params, nil
}

// queryFilter reads the optional entry filter from the query string.
func queryFilter(c *gin.Context) (filter.Filter, error) {
	f := filter.Filter{
		Level:         c.Query("level"),
		Feature:       c.Query("feature"),
		CorrelationID: c.Query("correlation_id"),
	}
	if v := c.Query("start"); v != "" {
		t := parser.ParseTimestamp(v)
		if t.IsZero() {
			return f, errBadParam("start", v)
		}
		f.Start = &t
	}
	if v := c.Query("end"); v != "" {
		t := parser.ParseTimestamp(v)
		if t.IsZero() {
			return f, errBadParam("end", v)
		}
		f.End = &t
	}
	return f, nil
}

type paramError struct{ name, value string }

func (e paramError) Error() string { return "invalid " + e.name + ": " + e.value }

func errBadParam(name, value string) error { return paramError{name, value} }

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Handler exposes the engine for tests.
func (s *Server) Handler() http.Handler { return s.engine }
