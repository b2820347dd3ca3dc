package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"wareki/internal/logging"
	"wareki/internal/metrics"
	"wareki/internal/wareki"
)

// Client-facing error messages.
const (
	ErrMsgInvalidRequest = "Invalid request"
	ErrMsgUnparseable    = "Unparseable year"
	ErrMsgInvalidYear    = "Year must be an integer"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status string `json:"status"`
}

// VersionResponse reports the running build.
type VersionResponse struct {
	Version string `json:"version"`
}

// ErrorResponse is returned for every non-2xx answer.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Query  string            `json:"query,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ConvertResponse is the result of a conversion.
type ConvertResponse struct {
	Query   string                  `json:"query,omitempty"`
	Year    int                     `json:"year"`
	Results []wareki.Representation `json:"results"`
}

// EraResponse describes one era of the table.
type EraResponse struct {
	wareki.Era
	Ongoing bool `json:"ongoing"`
}

type handlers struct {
	table     *wareki.Table
	normalize bool
	validator *Validator
	logger    *zap.Logger
	version   string
}

func (h *handlers) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *handlers) handleVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{Version: h.version})
}

func (h *handlers) handleEras(w http.ResponseWriter, r *http.Request) {
	eras := h.table.Eras()
	out := make([]EraResponse, len(eras))
	for i, e := range eras {
		out[i] = EraResponse{Era: e, Ongoing: e.IsOngoing()}
	}
	respondJSON(w, http.StatusOK, out)
}

// handleConvertQuery converts ?q=<expr>, a Gregorian or era-prefixed year.
func (h *handlers) handleConvertQuery(w http.ResponseWriter, r *http.Request) {
	req := ConvertRequest{Query: r.URL.Query().Get("q")}
	if err := h.validator.ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  ErrMsgInvalidRequest,
			Fields: FormatValidationError(err),
		})
		return
	}

	query := req.Query
	if h.normalize {
		query = wareki.Normalize(query)
	}

	log := logging.FromContext(r.Context(), h.logger)
	year, err := h.table.ParseYear(query)
	metrics.RecordConversion(metrics.KindQuery, err == nil)
	if err != nil {
		log.Debug("Unparseable query", zap.String("query", req.Query), zap.Error(err))
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrMsgUnparseable,
			Query: req.Query,
		})
		return
	}

	respondJSON(w, http.StatusOK, ConvertResponse{
		Query:   req.Query,
		Year:    year,
		Results: h.table.Convert(year),
	})
}

// handleConvertYear converts /convert/{year}; any integer is accepted.
func (h *handlers) handleConvertYear(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "year")
	year, err := strconv.Atoi(raw)
	metrics.RecordConversion(metrics.KindGregorian, err == nil)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: ErrMsgInvalidYear,
			Query: raw,
		})
		return
	}

	respondJSON(w, http.StatusOK, ConvertResponse{
		Year:    year,
		Results: h.table.Convert(year),
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
