package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gs1scan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gs1scan_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Decode metrics
	decodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gs1scan_decode_requests_total",
			Help: "Total number of barcode decode requests",
		},
		[]string{"source", "status"}, // source: single, batch, websocket
	)

	decodeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gs1scan_decode_errors_total",
			Help: "Total number of decode failures by error type",
		},
		[]string{"type"}, // not_gs1_barcode, ai_not_found, value_too_short, separator_not_found
	)

	decodedFields = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gs1scan_decoded_fields",
			Help:    "Number of AI fields decoded per barcode",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"source"},
	)

	barcodeLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gs1scan_barcode_length_bytes",
			Help:    "Length of submitted barcode payloads in bytes",
			Buckets: []float64{8, 16, 32, 64, 128, 256, 512},
		},
	)

	// Rate limiting metrics
	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gs1scan_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"type"}, // type: minute, hour, requests, data
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gs1scan_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gs1scan_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)
