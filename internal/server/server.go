// Package server serves the web UI and the JSON API for the invoice and
// deadline calculators.
package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/iwvelando/mediation-calc/internal/deadline"
	"github.com/iwvelando/mediation-calc/internal/invoice"
	"github.com/iwvelando/mediation-calc/internal/metrics"
	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/iwvelando/mediation-calc/pkg/datetime"
	"github.com/iwvelando/mediation-calc/pkg/format"
	"github.com/iwvelando/mediation-calc/pkg/output"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Settings tunes the handler.
type Settings struct {
	MaxBodySize   int64
	Version       string
	Locale        string
	DefaultOption int
}

type handler struct {
	logger        *zap.Logger
	engine        *deadline.Engine
	recorder      *metrics.Recorder
	maxBodySize   int64
	version       string
	locale        string
	defaultOption int
}

// NewHandler constructs the HTTP handler that serves the web UI and calculation API.
func NewHandler(logger *zap.Logger, engine *deadline.Engine, recorder *metrics.Recorder, settings Settings) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = deadline.Default()
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}

	h := &handler{
		logger:        logger,
		engine:        engine,
		recorder:      recorder,
		maxBodySize:   settings.MaxBodySize,
		version:       strings.TrimSpace(settings.Version),
		locale:        settings.Locale,
		defaultOption: settings.DefaultOption,
	}
	if h.maxBodySize <= 0 {
		h.maxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if h.version == "" {
		h.version = "dev"
	}
	if h.locale == "" {
		h.locale = constants.DefaultLocale
	}
	if h.defaultOption == 0 {
		h.defaultOption = 1
	}

	mux := http.NewServeMux()

	mux.Handle("/api/invoice", h.instrument("/api/invoice", h.handleInvoice))
	mux.Handle("/api/options", h.instrument("/api/options", h.handleOptions))
	mux.Handle("/api/deadlines", h.instrument("/api/deadlines", h.handleDeadlines))
	mux.Handle("/api/categories", h.instrument("/api/categories", h.handleCategories))
	mux.Handle("/api/version", h.instrument("/api/version", h.handleVersion))
	mux.Handle("/metrics", recorder.Handler())

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

type invoiceRequest struct {
	Fee    json.RawMessage `json:"fee"`
	Option *int            `json:"option,omitempty"`
	All    bool            `json:"all,omitempty"`
	Locale string          `json:"locale,omitempty"`
}

type invoiceResponse struct {
	Breakdowns []output.InvoiceView `json:"breakdowns"`
	Duration   string               `json:"duration"`
}

type deadlineResponse struct {
	output.DeadlineTableView
	Duration string `json:"duration"`
}

func (h *handler) handleInvoice(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleInvoice"
	start := time.Now()

	var (
		req invoiceRequest
		fee decimal.Decimal
		err error
	)
	switch r.Method {
	case http.MethodPost:
		req, err = h.decodeInvoiceRequest(w, r)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.respondError(w, r, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
				return
			}
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return
		}
	case http.MethodGet:
		req, err = invoiceRequestFromQuery(r)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = h.locale
	}

	fee, err = parseFee(req.Fee, locale)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid fee: %v", err), op)
		return
	}

	var breakdowns []invoice.Breakdown
	if req.All {
		breakdowns = invoice.ComputeAll(fee)
	} else {
		code := h.defaultOption
		if req.Option != nil {
			code = *req.Option
		}
		b, err := invoice.Compute(fee, code)
		h.recorder.Calculation(metrics.EngineInvoice, err)
		if err != nil {
			h.respondError(w, r, statusFor(err), err.Error(), op)
			return
		}
		breakdowns = []invoice.Breakdown{b}
	}

	resp := invoiceResponse{Breakdowns: make([]output.InvoiceView, 0, len(breakdowns))}
	for _, b := range breakdowns {
		h.recorder.Option(b.Treatment.Code())
		resp.Breakdowns = append(resp.Breakdowns, output.NewInvoiceView(b, locale))
	}
	if req.All {
		h.recorder.Calculation(metrics.EngineInvoice, nil)
	}

	elapsed := time.Since(start)
	resp.Duration = elapsed.String()

	h.logger.Info("invoice computed",
		zap.String("op", op),
		zap.String("requestID", requestID(w)),
		zap.String("fee", fee.String()),
		zap.Int("breakdowns", len(resp.Breakdowns)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) decodeInvoiceRequest(w http.ResponseWriter, r *http.Request) (invoiceRequest, error) {
	var req invoiceRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		return req, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return req, errors.New("empty request body")
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, err
	}
	return req, nil
}

func invoiceRequestFromQuery(r *http.Request) (invoiceRequest, error) {
	q := r.URL.Query()
	req := invoiceRequest{Locale: q.Get("locale")}

	fee, err := json.Marshal(q.Get("fee"))
	if err != nil {
		return req, err
	}
	req.Fee = fee

	if raw := strings.TrimSpace(q.Get("option")); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("invalid option %q", raw)
		}
		req.Option = &code
	}
	if raw := strings.TrimSpace(q.Get("all")); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			return req, fmt.Errorf("invalid all flag %q", raw)
		}
		req.All = all
	}
	return req, nil
}

// parseFee accepts either a JSON number or a string in locale's number format.
func parseFee(raw json.RawMessage, locale string) (decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return decimal.Zero, errors.New("missing fee")
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return decimal.Zero, err
		}
		return format.ParseAmount(text, locale)
	}
	return decimal.NewFromString(string(trimmed))
}

func (h *handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, output.NewOptionViews(invoice.Treatments()))
}

func (h *handler) handleDeadlines(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeadlines"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	startText := datetime.NormalizeDateInput(r.URL.Query().Get("start"))
	table, err := h.engine.TableFromString(startText)
	h.recorder.Calculation(metrics.EngineDeadline, err)
	if err != nil {
		h.respondError(w, r, statusFor(err), err.Error(), op)
		return
	}

	elapsed := time.Since(start)

	h.logger.Debug("deadlines computed",
		zap.String("op", op),
		zap.String("requestID", requestID(w)),
		zap.Time("start", table.Start),
		zap.Int("offsets", len(table.Offsets)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, deadlineResponse{
		DeadlineTableView: output.NewDeadlineTableView(table),
		Duration:          elapsed.String(),
	})
}

func (h *handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, output.NewCategoryViews(h.engine.Categories()))
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// statusFor maps calculation errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, invoice.ErrInvalidOption), errors.Is(err, deadline.ErrInvalidDateFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *handler) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)

		h.recorder.Request(route, sw.status, time.Since(start).Seconds())
	})
}

func requestID(w http.ResponseWriter) string {
	return w.Header().Get(RequestIDHeader)
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.String("requestID", requestID(w)),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
