package inspect

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danmuck/ghcbctl/internal/ghcbmsr"
	"github.com/danmuck/ghcbctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server serves the protocol catalog over HTTP.
type Server struct {
	ID       string
	Addr     string
	Appeared time.Time

	router   *gin.Engine
	basePath string
}

// Appear builds a standalone inspector with the standard middleware
// chain.
func Appear(id, addr string, corsOrigins []string) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(id, log.Logger))
	r.Use(observability.RequestMetrics(id))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		ID:       id,
		Addr:     addr,
		Appeared: time.Now(),
		router:   r,
	}
}

// Attach mounts the inspector on an existing router, for embedding and
// tests.
func Attach(id string, router *gin.Engine, basePath string) *Server {
	return &Server{
		ID:       id,
		Appeared: time.Now(),
		router:   router,
		basePath: basePath,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) RegisterRoutes() {
	routes := s.routes()
	routes.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"node":    s.ID,
			"version": "0.0.1",
		})
	})

	routes.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"node":    s.ID,
			"version": "0.0.1",
		})
	})

	routes.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.GET("/codes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"codes": Codes(),
			"kinds": kindSummaries(),
		})
	})

	routes.POST("/encode", s.handleEncode)
	routes.POST("/split", s.handleSplit)
	routes.POST("/decode", s.handleDecode)
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	return s.router.Run(s.Addr)
}

func (s *Server) routes() gin.IRoutes {
	if s.basePath == "" {
		return s.router
	}
	return s.router.Group(s.basePath)
}

type encodeRequest struct {
	Kind     string   `json:"kind"`
	Operands Operands `json:"operands"`
}

type splitRequest struct {
	Raw string `json:"raw"`
}

type decodeRequest struct {
	Kind     string   `json:"kind"`
	Raw      string   `json:"raw"`
	Operands Operands `json:"operands"`
}

func (s *Server) handleEncode(c *gin.Context) {
	var body encodeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, ok := Lookup(body.Kind)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownKind, body.Kind)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req, err := entry.Build(body.Operands)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"kind": entry.Kind,
		"msr":  hexString(req.MSR()),
		"info": hexString(uint64(req.Info())),
		"data": hexString(req.Data()),
	})
}

func (s *Server) handleSplit(c *gin.Context) {
	var body splitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raw, err := parseUintOperand("raw", body.Raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	info, data := ghcbmsr.Split(raw)
	c.JSON(http.StatusOK, gin.H{
		"info":      hexString(uint64(info)),
		"info_name": info.String(),
		"data":      hexString(data),
	})
}

func (s *Server) handleDecode(c *gin.Context) {
	var body decodeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, ok := Lookup(body.Kind)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownKind, body.Kind)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raw, err := parseUintOperand("raw", body.Raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields, err := entry.Decode(body.Operands, raw)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusUnprocessableEntity {
			observability.RecordDecodeRejection(string(entry.Kind))
			log.Warn().
				Str("kind", string(entry.Kind)).
				Str("raw", hexString(raw)).
				Err(err).
				Msg("decode rejected")
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"kind":   entry.Kind,
		"fields": fields,
	})
}

// statusFor maps protocol validation failures to 422 and everything
// else, operand or payload syntax included, to 400.
func statusFor(err error) int {
	var mismatch ghcbmsr.EchoMismatchError
	switch {
	case errors.Is(err, ghcbmsr.ErrUnexpectedResponseCode),
		errors.Is(err, ghcbmsr.ErrReservedBitsSet),
		errors.Is(err, ghcbmsr.ErrValueOutOfRange),
		errors.Is(err, ghcbmsr.ErrInvalidOperand),
		errors.Is(err, ghcbmsr.ErrShouldNotReturn),
		errors.As(err, &mismatch):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

type kindSummary struct {
	Kind           Kind     `json:"kind"`
	Request        string   `json:"request"`
	Response       string   `json:"response,omitempty"`
	Operands       []string `json:"operands,omitempty"`
	DecodeOperands []string `json:"decode_operands,omitempty"`
}

func kindSummaries() []kindSummary {
	out := make([]kindSummary, 0, len(catalog))
	for _, e := range catalog {
		summary := kindSummary{
			Kind:           e.Kind,
			Request:        hexString(uint64(e.RequestCode)),
			Operands:       e.Operands,
			DecodeOperands: e.DecodeOperands,
		}
		if e.HasResponse {
			summary.Response = hexString(uint64(e.ResponseCode))
		}
		out = append(out, summary)
	}
	return out
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
