// Package kerr contains the coded errors reported while building or querying the sort lattice.
package kerr

import (
	"fmt"
	"log/slog"
	"strings"
)

// Errors accumulates KError values. A nil *Errors is empty and ready to use.
type Errors struct {
	errs []KError
}

var _ error = &Errors{}

func (r *Errors) With(err ...KError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	for _, err := range err {
		r.errs = append(r.errs, err)
	}
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []KError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Err returns r as an error, or nil if r holds no errors
func (r *Errors) Err() error {
	if !r.HasError() {
		return nil
	}
	return r
}

func (r *Errors) Error() string {
	msgs := make([]string, 0, len(r.errs))
	for _, e := range r.errs {
		msgs = append(msgs, FormatWithCode(e))
	}
	return strings.Join(msgs, "\n")
}

// Unwrap lets errors.Is and errors.As look into every accumulated error
func (r *Errors) Unwrap() []error {
	unwrapped := make([]error, 0, len(r.errs))
	for _, e := range r.errs {
		unwrapped = append(unwrapped, e)
	}
	return unwrapped
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.errs {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
