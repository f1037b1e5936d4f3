package exercise

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/tailtrack/tailtrack/internal/summary"
)

const maxBodyBytes = 1 << 20

type (
	Router struct {
		service servicer
		now     func() time.Time
	}
)

func NewRouter(service servicer) chi.Router {
	router := &Router{service: service, now: time.Now}
	return router.Routes()
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.CreateRecord)
	router.Get("/", r.ListRecords)
	router.Get("/summary", r.WeeklySummary)
	router.Get("/export", r.ExportCSV)
	router.Get("/{id}", r.GetRecord)
	router.Put("/{id}", r.UpdateRecord)
	router.Delete("/{id}", r.DeleteRecord)

	return router
}

// CreateRecord stores a new record and returns it with 201
func (r *Router) CreateRecord(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body CreateRecordIn
	if err := decodeBody(w, req, &body); err != nil {
		logger.Warn().Err(err).Msg("Failed to decode record")
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	record, err := r.service.CreateRecord(ctx, body)
	if err != nil {
		r.handleError(w, req, err, "Error creating record")
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// ListRecords returns records for ?petId=, or all records when it is absent
func (r *Router) ListRecords(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	records, err := r.service.ListRecords(ctx, listQuery(req))
	if err != nil {
		r.handleError(w, req, err, "Error listing records")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// GetRecord returns one record or 404
func (r *Router) GetRecord(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	id := chi.URLParam(req, "id")

	record, err := r.service.GetRecord(ctx, id)
	if err != nil {
		r.handleError(w, req, err, "Error getting record")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// UpdateRecord applies a partial update
func (r *Router) UpdateRecord(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)
	id := chi.URLParam(req, "id")

	var body UpdateRecordIn
	if err := decodeBody(w, req, &body); err != nil {
		logger.Warn().Err(err).Str("id", id).Msg("Failed to decode record update")
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	record, err := r.service.UpdateRecord(ctx, id, body)
	if err != nil {
		r.handleError(w, req, err, "Error updating record")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DeleteRecord always answers 200 with {ok}; ok is false when nothing was deleted
func (r *Router) DeleteRecord(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	id := chi.URLParam(req, "id")

	ok, err := r.service.DeleteRecord(ctx, id)
	if err != nil {
		r.handleError(w, req, err, "Error deleting record")
		return
	}

	writeJSON(w, http.StatusOK, DeleteRecordOut{OK: ok})
}

// WeeklySummary returns the trailing seven-day totals by the server clock
func (r *Router) WeeklySummary(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	totals, err := r.service.WeeklySummary(ctx, listQuery(req), r.now())
	if err != nil {
		r.handleError(w, req, err, "Error computing weekly summary")
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// ExportCSV exports records as CSV file
func (r *Router) ExportCSV(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	records, err := r.service.ListRecords(ctx, listQuery(req))
	if err != nil {
		r.handleError(w, req, err, "Error getting records for export")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=exercises.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Pet", "Date", "Activity", "Duration (minutes)", "Distance (mi)", "Distance (km)", "Pace (min/mi)", "Notes"}
	if err := writer.Write(header); err != nil {
		logger.Error().Err(err).Msg("Error writing CSV header")
		return
	}

	for _, record := range records {
		row := []string{
			record.PetID,
			record.Date.Format(time.RFC3339),
			string(record.ActivityType),
			strconv.FormatFloat(record.DurationMinutes, 'f', -1, 64),
			strconv.FormatFloat(summary.Round2(record.DistanceMiles), 'f', 2, 64),
			strconv.FormatFloat(summary.Round2(summary.MilesToKm(record.DistanceMiles)), 'f', 2, 64),
			summary.FormatPace(record.DurationMinutes, record.DistanceMiles),
			record.Notes,
		}
		if err := writer.Write(row); err != nil {
			logger.Error().Err(err).Msg("Error writing CSV record")
			return
		}
	}
}

// handleError maps service errors to status codes. Validation and not-found
// carry their own message; anything else is logged and hidden.
func (r *Router) handleError(w http.ResponseWriter, req *http.Request, err error, msg string) {
	logger := hlog.FromRequest(req)

	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Warn().Strs("problems", validationErr.Problems).Msg("Record validation failed")
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		logger.Error().Err(err).Msg(msg)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func listQuery(req *http.Request) ListQuery {
	return ListQuery{PetID: req.URL.Query().Get("petId")}
}

func decodeBody(w http.ResponseWriter, req *http.Request, dst interface{}) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	return json.NewDecoder(req.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorOut{Error: message})
}
