
package models

import "errors"

var (
	ErrTransportFailure = errors.New("transport failure")
	ErrMissingPayload   = errors.New("missing review payload")
	ErrMalformedItem    = errors.New("malformed review item")
	ErrNoData           = errors.New("no data")
)

// SkipReasonFor maps a page or item error to the reason recorded in the
// run report. Unknown errors count as transport failures.
func SkipReasonFor(err error) SkipReason {
	switch {
	case errors.Is(err, ErrMissingPayload):
		return SkipMissingPayload
	case errors.Is(err, ErrMalformedItem):
		return SkipMalformedItem
	default:
		return SkipTransportFailure
	}
}
