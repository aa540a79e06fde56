package frontend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/reputation"
	"github.com/Shubhamprana/Shabari-sub003/internal/analyzer"
	"github.com/Shubhamprana/Shabari-sub003/internal/contextwatch"
	"github.com/Shubhamprana/Shabari-sub003/internal/fusion"
	"github.com/Shubhamprana/Shabari-sub003/internal/metrics"
	"github.com/Shubhamprana/Shabari-sub003/internal/qr"
	"github.com/Shubhamprana/Shabari-sub003/internal/rules"
	"github.com/Shubhamprana/Shabari-sub003/internal/service"
	"github.com/Shubhamprana/Shabari-sub003/internal/utils"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	lib := rules.NewLibrary()
	engine := fusion.NewEngine(logger)
	contentAnalyzer := analyzer.NewContentAnalyzer(lib, logger)
	svc := service.NewFraudDetectionService(
		analyzer.NewSenderAnalyzer(lib, logger),
		contentAnalyzer,
		nil,
		engine,
		qr.NewAnalyzer(contentAnalyzer, engine, reputation.NewNullChecker(), logger),
		contextwatch.NewTracker(contextwatch.DefaultConfig(), logger),
		nil,
		utils.NewTextProcessor(logger),
		metrics.New(prometheus.NewRegistry()),
		logger,
		service.Options{},
	)
	f := NewHTTPFrontend(svc, logger, "127.0.0.1:0", []string{"*"})
	return f.routes()
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyzeSMSEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/v1/analyze/sms", `{
		"sender_info": "SBI12345",
		"message_content": "URGENT: Your account will be suspended. Share your OTP now http://bit.ly/abc123"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp combinedDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsFraud)
	assert.Equal(t, "CRITICAL", resp.RiskLevel)
	assert.Equal(t, "scammer", resp.SenderAnalysis.SenderType)
	assert.NotEmpty(t, resp.ContentAnalysis.FraudPatterns)
	assert.NotEmpty(t, resp.ProcessingID)
}

func TestAnalyzeSMSRequiresContent(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/v1/analyze/sms", `{"sender_info": "SBIINB"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message_content is required")
}

func TestAnalyzeSMSRejectsBadJSON(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/v1/analyze/sms", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestAnalyzeMessageEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/v1/analyze/message", `{
		"text": "See you at the station at 6",
		"sender_id": "+919876543210"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp messageDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsFraud)
	assert.Equal(t, "SAFE", resp.ThreatLevel)
}

func TestAnalyzeMessageRequiresText(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/v1/analyze/message", `{"sender_id": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text is required")
}

func TestAnalyzeQREndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/v1/analyze/qr", `{"data": "upi://pay?pa=freemoney@fake&pn=LOTTERY&am=100"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp qrDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "PAYMENT", resp.QRType)
	assert.Equal(t, "SUSPICIOUS", resp.ThreatLevel)
	assert.NotEmpty(t, resp.Explanation.RedFlags)
}

func TestAnalyzeQRRequiresData(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/v1/analyze/qr", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "data is required")
}

func TestContextEndpoints(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/v1/context/interaction", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"recorded"}`, rec.Body.String())

	rec = postJSON(t, h, "/v1/context/reset", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"reset"}`, rec.Body.String())
}
