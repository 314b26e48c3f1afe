package server

import (
	"fmt"
	"net/http"

	"github.com/MeKo-Tech/gs1scan/internal/catalogue"
	"github.com/MeKo-Tech/gs1scan/internal/gs1"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	scanner      *gs1.Scanner
	corsOrigin   string
	timeoutSec   int
	maxBatchSize int
	rateLimiter  *RateLimiter
}

// Config holds server configuration.
type Config struct {
	Host          string
	Port          int
	CORSOrigin    string
	TimeoutSec    int
	MaxBatchSize  int
	CataloguePath string
	FNC1Prefix    string
	Separator     string
	RateLimit     RateLimitConfig
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	RequestsPerHour   int
	MaxRequestsPerDay int
	MaxDataPerDay     int64
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

type CatalogueResponse struct {
	Definitions []gs1.Definition `json:"definitions"`
	Count       int              `json:"count"`
}

// DecodeRequest is the JSON body accepted by the decode endpoint.
type DecodeRequest struct {
	Barcode string `json:"barcode"`
}

// DecodeResponse reports the outcome of decoding a single barcode.
type DecodeResponse struct {
	Success   bool              `json:"success"`
	Result    *gs1.DecodeResult `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	ErrorType string            `json:"error_type,omitempty"`
}

// BatchDecodeRequest is the JSON body accepted by the batch endpoint.
type BatchDecodeRequest struct {
	Barcodes        []string `json:"barcodes"`
	ContinueOnError bool     `json:"continue_on_error"`
}

// BatchDecodeResponse reports per-item outcomes for a batch decode.
type BatchDecodeResponse struct {
	Results   []DecodeResponse `json:"results"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
}

// NewServer creates a new decode server instance. An empty CataloguePath
// selects the embedded standard AI table.
func NewServer(config Config) (*Server, error) {
	var (
		cat *gs1.Catalogue
		err error
	)
	if config.CataloguePath != "" {
		cat, err = catalogue.Load(config.CataloguePath)
	} else {
		cat, err = catalogue.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading catalogue: %w", err)
	}

	var opts []gs1.Option
	if config.FNC1Prefix != "" {
		opts = append(opts, gs1.WithFNC1Prefix(config.FNC1Prefix))
	}
	if config.Separator != "" {
		opts = append(opts, gs1.WithSeparator(config.Separator))
	}

	maxBatch := config.MaxBatchSize
	if maxBatch < 1 {
		maxBatch = 100
	}

	s := &Server{
		scanner:      gs1.NewScanner(cat, opts...),
		corsOrigin:   config.CORSOrigin,
		timeoutSec:   config.TimeoutSec,
		maxBatchSize: maxBatch,
	}

	if config.RateLimit.Enabled {
		s.rateLimiter = NewRateLimiter(
			config.RateLimit.RequestsPerMinute,
			config.RateLimit.RequestsPerHour,
			config.RateLimit.MaxRequestsPerDay,
			config.RateLimit.MaxDataPerDay,
		)
	}

	return s, nil
}

// Scanner returns the scanner the server decodes with.
func (s *Server) Scanner() *gs1.Scanner {
	return s.scanner
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/catalogue", s.corsMiddleware(s.catalogueHandler))
	mux.HandleFunc("/decode", s.corsMiddleware(s.rateLimitMiddleware(s.decodeHandler)))
	mux.HandleFunc("/decode/batch", s.corsMiddleware(s.rateLimitMiddleware(s.batchDecodeHandler)))
	mux.HandleFunc("/decode/ws", s.decodeWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
