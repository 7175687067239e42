package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"wadhifa/internal/apperrors"
	"wadhifa/internal/cache"
	"wadhifa/internal/queue"
)

// Handler carries the dependencies shared by all endpoint handlers.
type Handler struct {
	Store    StorageInterface
	Queue    queue.Publisher
	Stats    *cache.StatsCache // nil when REDIS_URL is unset
	Log      *logrus.Logger
	validate *validator.Validate
}

// NewHandler creates a new Handler.
func NewHandler(store StorageInterface, pub queue.Publisher, stats *cache.StatsCache, log *logrus.Logger) *Handler {
	return &Handler{
		Store:    store,
		Queue:    pub,
		Stats:    stats,
		Log:      log,
		validate: validator.New(),
	}
}

// PingHandler answers "ok" for liveness checks.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

const maxBodyBytes = 1048576

// decodeBody unmarshals a size-capped JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validation("body", "invalid JSON format")
	}
	return nil
}

// checkPayload runs struct validation and reports the first violated
// field only.
func (h *Handler) checkPayload(payload interface{}) error {
	err := h.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return apperrors.Validation(first.Field(), fmt.Sprintf("failed on the '%s' rule", first.Tag()))
	}
	return apperrors.Validation("body", err.Error())
}

// parseDeadline parses an optional date or timestamp string. Deadlines
// must be today or later; today itself is allowed.
func parseDeadline(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return nil, apperrors.Validation(field, "must be a date in YYYY-MM-DD format")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.Location())
	if t.Before(today) {
		return nil, apperrors.Validation(field, "must not be in the past")
	}
	// Date-only deadlines remain valid through the stated day.
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		end := t.AddDate(0, 0, 1).Add(-time.Second)
		return &end, nil
	}
	return &t, nil
}

// flexID accepts both numeric and string ids: the UI forwards route
// params verbatim, so "5" and 5 both arrive.
type flexID int

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*f = flexID(n)
	return nil
}

func errInvalidID(param, raw string) error {
	return apperrors.Validation(param, fmt.Sprintf("%q is not a valid id", raw))
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.WithField("error", err.Error()).Error("encode response failed")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// writeError maps the error taxonomy onto HTTP statuses. Validation
// messages reach the submitter verbatim; everything else is generic.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidation(err); ok {
		h.respondError(w, http.StatusBadRequest, ve.Error())
		return
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "not found")
		return
	}
	if errors.Is(err, apperrors.ErrInvalidState) {
		h.Log.WithField("error", err.Error()).Warn("rejected state transition")
		h.respondError(w, http.StatusConflict, "invalid state transition")
		return
	}
	h.Log.WithField("error", err.Error()).Error("request failed")
	h.respondError(w, http.StatusInternalServerError, "internal server error")
}
