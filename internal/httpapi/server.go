// Package httpapi provides the HTTP wiring between the form clients and
// the intake pipelines. Application failures are signalled only in the
// JSON body status; the form endpoints always answer HTTP 200 with
// {status, message} so callers inspect the body, never the status code.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cakeOrderManagement/internal/auth"
	"cakeOrderManagement/internal/intake"
	"cakeOrderManagement/internal/sheet"
	"cakeOrderManagement/internal/submission"
)

// Server handles the public form endpoints and the admin read API.
type Server struct {
	pipeline *intake.Pipeline
	sheets   *sheet.Store
	logger   *zap.Logger

	orderSheet   string
	inquirySheet string
	jwtSecret    string
	filesDir     string

	now func() time.Time
}

// Options configures the server surface.
type Options struct {
	OrderSheet   string
	InquirySheet string
	// JWTSecret guards the admin read API; empty disables it.
	JWTSecret string
	// FilesDir, when non-empty, is exposed read-only under /files/ so
	// locally archived photo links resolve.
	FilesDir string
}

// New builds the server.
func New(pipeline *intake.Pipeline, sheets *sheet.Store, logger *zap.Logger, opts Options) *Server {
	return &Server{
		pipeline:     pipeline,
		sheets:       sheets,
		logger:       logger,
		orderSheet:   opts.OrderSheet,
		inquirySheet: opts.InquirySheet,
		jwtSecret:    opts.JWTSecret,
		filesDir:     opts.FilesDir,
		now:          time.Now,
	}
}

// Router returns the engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	// Anything escaping a handler still answers the structured contract.
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		s.logger.Error("panic in handler", zap.Any("panic", recovered))
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "internal error"})
	}))
	r.Use(RequestID())
	r.Use(Logger(s.logger))

	r.GET("/", s.health)
	r.POST("/", s.submit)

	if s.filesDir != "" {
		r.Static("/files", s.filesDir)
	}

	if s.jwtSecret != "" {
		admin := r.Group("/api", auth.Middleware(s.jwtSecret))
		admin.GET("/orders", s.listRows(func() string { return s.orderSheet }))
		admin.GET("/inquiries", s.listRows(func() string { return s.inquirySheet }))
	} else {
		s.logger.Warn("JWT_SECRET not set; admin read API disabled")
	}
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Slice of Heaven Cakes API is running",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// submit dispatches on formType; unrecognized or absent values fall back
// to the order form for backward compatibility.
func (s *Server) submit(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "could not parse form data"})
		return
	}
	values := c.Request.PostForm

	var out intake.Outcome
	switch values.Get("formType") {
	case "contact":
		out = s.pipeline.SubmitInquiry(c.Request.Context(), submission.InquiryFromForm(values))
	default:
		out = s.pipeline.SubmitOrder(c.Request.Context(), submission.OrderFromForm(values))
	}
	c.JSON(http.StatusOK, gin.H{"status": out.Status, "message": out.Message})
}

// listRows exposes a sheet's rows to the admin API, headers first.
func (s *Server) listRows(name func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sheetName := name()
		headers, err := s.sheets.Headers(c.Request.Context(), sheetName)
		if err == sheet.ErrSheetNotFound {
			c.JSON(http.StatusOK, gin.H{"status": "success", "headers": []string{}, "rows": [][]string{}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}
		rows, err := s.sheets.Rows(c.Request.Context(), sheetName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}
		if rows == nil {
			rows = [][]string{}
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "headers": headers, "rows": rows})
	}
}
