package errors

import (
	"errors"
	"log/slog"
	"sort"
)

// Log logs an error using the default slog logger. See LogTo.
func Log(err error) {
	LogTo(slog.Default(), err)
}

// LogTo logs an error using logger, rendering the cause and metadata of a
// StructuredError as log fields. Metadata fields are sorted by key.
func LogTo(logger *slog.Logger, err error) {
	var serr *StructuredError
	if !errors.As(err, &serr) {
		logger.Error(err.Error())
		return
	}

	args := make([]any, 0, len(serr.metadata)*2+2)
	if serr.cause != nil {
		args = append(args, "cause", serr.cause.Error())
	}

	keys := make([]string, 0, len(serr.metadata))
	for k := range serr.metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		args = append(args, k, serr.metadata[k])
	}

	logger.Error(serr.Error(), args...)
}
