package main

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Statistics holds app stats for ops.
type Statistics struct {
	version   string
	container bool
	runtime   string
	platform  string
	called    uint64
	started   time.Time
	status    map[int]uint64
	mu        *sync.RWMutex
}

// Maintenance holds app maintenance mode infos.
type Maintenance struct {
	enabled atomic.Bool
	mu      sync.RWMutex
	message string
	started time.Time
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger      *zap.Logger
	config      *Config
	stats       *Statistics
	mode        *Maintenance
	clock       Clocker
	idsHandler  UIDHandler
	bookService BookServiceProvider
	mirror      MirrorStorage
}

// NewAPIHandler provides a new instance of APIHandler. The mirror
// is nil when the journal is disabled.
func NewAPIHandler(logger *zap.Logger, config *Config, stats *Statistics, clock Clocker, idsHandler UIDHandler, bs BookServiceProvider, mirror MirrorStorage) *APIHandler {
	m := &Maintenance{}
	m.enabled.Store(false)
	stats.status = make(map[int]uint64)
	stats.mu = &sync.RWMutex{}
	return &APIHandler{
		logger:      logger,
		config:      config,
		stats:       stats,
		mode:        m,
		clock:       clock,
		idsHandler:  idsHandler,
		bookService: bs,
		mirror:      mirror,
	}
}

// writeResponse sends a success response and logs any failure to do so.
func (api *APIHandler) writeResponse(ctx context.Context, w http.ResponseWriter, resp *APIResponse) {
	if err := WriteResponse(ctx, w, resp); err != nil {
		api.GetLoggerFromContext(ctx).Error("failed to send response", zap.Error(err))
	}
}

// writeError sends an error response and logs any failure to do so.
func (api *APIHandler) writeError(ctx context.Context, w http.ResponseWriter, code int, message string) {
	if err := WriteErrorResponse(ctx, w, NewAPIError(code, message)); err != nil {
		api.GetLoggerFromContext(ctx).Error("failed to send error response", zap.Error(err))
	}
}
