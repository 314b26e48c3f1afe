package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/MeKo-Tech/gs1scan/internal/gs1"
	"github.com/MeKo-Tech/gs1scan/internal/result"
	"github.com/MeKo-Tech/gs1scan/internal/version"
)

const formatText = "text"

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v, _, _ := version.Info()
	response := HealthResponse{
		Status:  "healthy",
		Version: v,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// catalogueHandler returns the loaded AI definition table.
func (s *Server) catalogueHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defs := s.scanner.Catalogue().Definitions()
	if code := r.URL.Query().Get("code"); code != "" {
		def, ok := s.scanner.Catalogue().Find(code)
		if !ok {
			s.writeErrorResponse(w, fmt.Sprintf("unknown AI code: %s", code), http.StatusNotFound)
			return
		}
		defs = []gs1.Definition{def}
	}

	response := CatalogueResponse{
		Definitions: defs,
		Count:       len(defs),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding catalogue response: %v\n", err)
	}
}

// decodeHandler processes single barcode decode requests.
func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Barcode == "" {
		s.writeErrorResponse(w, "No barcode provided", http.StatusBadRequest)
		return
	}

	barcodeLength.Observe(float64(len(req.Barcode)))

	start := time.Now()
	res, err := s.scanner.Decode(req.Barcode).Get()
	duration := time.Since(start)

	if err != nil {
		decodeRequestsTotal.WithLabelValues("single", "error").Inc()
		decodeErrorsTotal.WithLabelValues(decodeErrorType(err)).Inc()
		s.writeDecodeError(w, err)
		return
	}

	decodeRequestsTotal.WithLabelValues("single", "success").Inc()
	httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())
	decodedFields.WithLabelValues("single").Observe(float64(len(res.Fields)))

	if format := r.URL.Query().Get("format"); format == formatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(gs1.ToPlainText(res)))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := DecodeResponse{Success: true, Result: res}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding decode response: %v\n", err)
	}
}

// batchDecodeHandler processes multiple barcodes in one request.
func (s *Server) batchDecodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BatchDecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Barcodes) == 0 {
		s.writeErrorResponse(w, "No barcodes provided", http.StatusBadRequest)
		return
	}
	if len(req.Barcodes) > s.maxBatchSize {
		s.writeErrorResponse(w,
			fmt.Sprintf("Batch size %d exceeds maximum of %d", len(req.Barcodes), s.maxBatchSize),
			http.StatusRequestEntityTooLarge)
		return
	}

	results := make([]result.Result[*gs1.DecodeResult], len(req.Barcodes))
	for i, barcode := range req.Barcodes {
		barcodeLength.Observe(float64(len(barcode)))
		results[i] = s.scanner.Decode(barcode)
	}

	response := BatchDecodeResponse{Results: make([]DecodeResponse, len(results))}
	for i, res := range results {
		decoded, err := res.Get()
		if err != nil {
			decodeRequestsTotal.WithLabelValues("batch", "error").Inc()
			decodeErrorsTotal.WithLabelValues(decodeErrorType(err)).Inc()
			response.Results[i] = DecodeResponse{
				Success:   false,
				Error:     err.Error(),
				ErrorType: decodeErrorType(err),
			}
			response.Failed++
			continue
		}
		decodeRequestsTotal.WithLabelValues("batch", "success").Inc()
		decodedFields.WithLabelValues("batch").Observe(float64(len(decoded.Fields)))
		response.Results[i] = DecodeResponse{Success: true, Result: decoded}
		response.Succeeded++
	}

	status := http.StatusOK
	if !req.ContinueOnError {
		if _, err := result.Sequence(results).Get(); err != nil {
			status = http.StatusUnprocessableEntity
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding batch response: %v\n", err)
	}
}

// writeDecodeError maps a decode failure to a 422 with the typed error.
func (s *Server) writeDecodeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)

	response := DecodeResponse{
		Success:   false,
		Error:     err.Error(),
		ErrorType: decodeErrorType(err),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing decode error response: %v\n", err)
	}
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := DecodeResponse{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Log error, but can't send another response
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}

// decodeErrorType maps the closed decode error set to wire identifiers.
func decodeErrorType(err error) string {
	return gs1.ErrorCode(err)
}
