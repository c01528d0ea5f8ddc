package errors

import (
	stderrors "errors"

	"github.com/verdantworks/growline/internal/platform/errors/i18n"
)

// UserMessage renders the localized user-facing message for err.
//
// Non-domain errors render the UNKNOWN message so internal details never
// leak to clients.
func UserMessage(err error, locale string) string {
	catalog := i18n.Default().Resolve(locale)
	if err == nil {
		return catalog.Format(string(CodeUnknown), nil)
	}

	var e *Error
	if !stderrors.As(err, &e) {
		return catalog.Format(string(CodeUnknown), nil)
	}
	return catalog.Format(string(e.Code), e.Metadata)
}
