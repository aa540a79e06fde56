package frontend

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/service"
)

// HTTPFrontend exposes the analysis service over a JSON API.
type HTTPFrontend struct {
	service        *service.FraudDetectionService
	logger         *zap.Logger
	server         *http.Server
	allowedOrigins []string
}

// NewHTTPFrontend creates an HTTP frontend listening on the given address.
func NewHTTPFrontend(svc *service.FraudDetectionService, logger *zap.Logger, listenAddr string, allowedOrigins []string) *HTTPFrontend {
	f := &HTTPFrontend{
		service:        svc,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
	f.server = &http.Server{
		Addr:              listenAddr,
		Handler:           f.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return f
}

func (f *HTTPFrontend) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: f.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", f.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/analyze/sms", f.handleAnalyzeSMS)
		v1.Post("/analyze/message", f.handleAnalyzeMessage)
		v1.Post("/analyze/qr", f.handleAnalyzeQR)
		v1.Post("/context/interaction", f.handleInteraction)
		v1.Post("/context/reset", f.handleContextReset)
	})

	return r
}

// Start begins serving requests. It blocks until the server exits.
func (f *HTTPFrontend) Start() error {
	f.logger.Info("Starting HTTP frontend", zap.String("addr", f.server.Addr))
	if err := f.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (f *HTTPFrontend) Stop() error {
	f.logger.Info("Stopping HTTP frontend")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return f.server.Shutdown(ctx)
}

type smsRequest struct {
	SenderInfo     string `json:"sender_info"`
	MessageContent string `json:"message_content"`
	ReceivedTime   string `json:"received_time,omitempty"`
	EnableML       bool   `json:"enable_ml_analysis"`
}

type messageRequest struct {
	Text     string `json:"text"`
	SenderID string `json:"sender_id,omitempty"`
}

type qrRequest struct {
	Data string `json:"data"`
}

func (f *HTTPFrontend) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *HTTPFrontend) handleAnalyzeSMS(w http.ResponseWriter, r *http.Request) {
	var req smsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MessageContent == "" {
		writeError(w, http.StatusBadRequest, "message_content is required")
		return
	}

	receivedTime := time.Now()
	if req.ReceivedTime != "" {
		if t, err := time.Parse(time.RFC3339, req.ReceivedTime); err == nil {
			receivedTime = t
		}
	}

	verdict := f.service.AnalyzeSMS(r.Context(), core.AnalysisInput{
		SenderInfo:       req.SenderInfo,
		MessageContent:   req.MessageContent,
		ReceivedTime:     receivedTime,
		EnableMLAnalysis: req.EnableML,
	})
	writeJSON(w, http.StatusOK, combinedResponse(verdict))
}

func (f *HTTPFrontend) handleAnalyzeMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	verdict := f.service.AnalyzeMessage(r.Context(), req.Text, req.SenderID)
	writeJSON(w, http.StatusOK, messageResponse(verdict))
}

func (f *HTTPFrontend) handleAnalyzeQR(w http.ResponseWriter, r *http.Request) {
	var req qrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Data == "" {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	verdict := f.service.AnalyzeQR(r.Context(), req.Data)
	writeJSON(w, http.StatusOK, qrResponse(verdict))
}

func (f *HTTPFrontend) handleInteraction(w http.ResponseWriter, _ *http.Request) {
	f.service.RecordUserInteraction()
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (f *HTTPFrontend) handleContextReset(w http.ResponseWriter, _ *http.Request) {
	f.service.ResetContext()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
