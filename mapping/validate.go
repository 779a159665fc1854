package mapping

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		e := sl.Current().Interface().(Entry)
		if (e.URI == "") == (e.Sentinel == "") {
			sl.ReportError(e.URI, "URI", "uri", "uri_xor_sentinel", "")
		}
	}, Entry{})
	return v
}

// Validate checks a table and prepares it for lookups: every category
// and sentinel must be known, every entry must carry exactly one of uri or
// sentinel, and extract patterns must compile with one capture group.
func (t *Table) Validate() error {
	if err := validate.Struct(t); err != nil {
		return validationError(t, err)
	}

	for cat, ct := range t.Categories {
		if ct == nil {
			return fmt.Errorf("%s: category %s has no entries", t.Source, cat)
		}
		if ct.Extract != "" {
			re, err := regexp.Compile(ct.Extract)
			if err != nil {
				return fmt.Errorf("%s: category %s: bad extract pattern: %w", t.Source, cat, err)
			}
			if re.NumSubexp() < 1 {
				return fmt.Errorf("%s: category %s: extract pattern needs a capture group", t.Source, cat)
			}
			ct.extract = re
		}
		for i := range ct.Entries {
			key := Normalize(ct.Entries[i].Match)
			if key == "" {
				return fmt.Errorf("%s: category %s: entry %d has a blank match", t.Source, cat, i)
			}
			ct.Entries[i].key = key
		}
	}
	return nil
}

func validationError(t *Table, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: rule '%s' expected '%s', got '%v'", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("invalid override table %q: %s", t.Source, strings.Join(msgs, "; "))
}
