package hub

import (
	"fmt"
	"strings"
)

// MalformedRecordError reports a source document that lacks something the
// pipeline cannot do without. It only ever aborts the one document.
type MalformedRecordError struct {
	Source SourceID
	Field  string // Field path (e.g., "title", "document")
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("malformed record: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed %s record: %s: %s", e.Source, e.Field, e.Reason)
}

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains all validation errors for a record.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Check validates the mandatory parts of a record: a known source, an
// external identifier and a title.
func Check(r *Record) *ValidationResult {
	result := &ValidationResult{}

	if !r.Source.Valid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "source_id",
			Code:    "invalid",
			Message: fmt.Sprintf("unknown source %q", string(r.Source)),
		})
	}
	if !r.ExternalID.Valid {
		result.Errors = append(result.Errors, ValidationError{
			Field:   FieldExternalID.String(),
			Code:    "required",
			Message: "external identifier is required",
		})
	}
	if !r.Title.Valid {
		result.Errors = append(result.Errors, ValidationError{
			Field:   FieldTitle.String(),
			Code:    "required",
			Message: "title is required",
		})
	}

	return result
}

// Validate returns a *MalformedRecordError describing every missing
// mandatory field, or nil.
func (r *Record) Validate() error {
	result := Check(r)
	if result.IsValid() {
		return nil
	}

	fields := make([]string, 0, len(result.Errors))
	msgs := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
		msgs = append(msgs, e.Message)
	}
	return &MalformedRecordError{
		Source: r.Source,
		Field:  strings.Join(fields, ","),
		Reason: strings.Join(msgs, "; "),
	}
}
