package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"empform/internal/domain/employee"
	"empform/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// DecodeJSON reads a single JSON object from r into dst, rejecting unknown
// fields and trailing data.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// FailField rejects a request at the first field that failed validation.
func FailField(w http.ResponseWriter, requestID string, fe employee.FieldError) {
	FailValidation(w, requestID, fe.Message, []ValidationIssue{{Field: string(fe.Field), Reason: fe.Message}})
}

func FailValidation(w http.ResponseWriter, requestID, message string, issues []ValidationIssue) {
	details := map[string]any{"fields": issues}
	if len(issues) > 0 {
		details["field"] = issues[0].Field
	}
	if strings.TrimSpace(message) == "" {
		message = "payload validation failed"
	}
	api.FailWithDetails(w, http.StatusBadRequest, "validation_error", message, details, requestID)
}
