package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// parseID reads a positive integer identifier
func parseID(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if !govalidator.IsInt(value) {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	id, err := govalidator.ToInt(value)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

// parseAchievement treats a blank field as zero
func parseAchievement(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	if !govalidator.IsFloat(value) {
		return 0, fmt.Errorf("invalid achievement %q", value)
	}
	return govalidator.ToFloat(value)
}

// formTimeLayouts are tried in order, datetime-local inputs submit the first two
var formTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// parseFormTime accepts a datetime-local value, RFC3339 or unix seconds.
// Values without a zone are read in loc.
func parseFormTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("missing time")
	}

	for _, layout := range formTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	if govalidator.IsInt(value) {
		secs, err := govalidator.ToInt(value)
		if err == nil {
			return time.Unix(secs, 0), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time %q", value)
}
