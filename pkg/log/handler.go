package log

import (
	"github.com/cockroachdb/errors"
)

// marshalStack extracts the stack trace recorded by cockroachdb/errors so
// zerolog can emit it under the "stack" field when Event.Stack is used.
func marshalStack(err error) interface{} {
	if s := extractStacktrace(err); s != "" {
		return s
	}
	return nil
}

func extractStacktrace(err error) string {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		safeDetails := errors.GetSafeDetails(e).SafeDetails
		if len(safeDetails) > 0 && safeDetails[0] != "" {
			return safeDetails[0]
		}
	}
	return ""
}
