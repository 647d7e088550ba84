package main

import (
	"context"
	"errors"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// hintedError carries a hint computed where the failure context is known.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// withEngineHint attaches engine-specific advice to browser failures.
func withEngineHint(err error, engine string) error {
	if errors.Is(err, mdpdf.ErrBrowserConnect) {
		return withHint(err, hints.ForBrowserConnect(engine))
	}
	return err
}

// hintFor returns the hint to print after an error, or "".
func hintFor(err error) string {
	var h *hintedError
	if errors.As(err, &h) {
		return h.hint
	}

	switch {
	case errors.Is(err, mdpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect("")
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, mdpdf.ErrUnknownTheme):
		return hints.ForUnknownTheme(nil)
	case errors.Is(err, mdpdf.ErrUnknownExtension):
		return hints.ForUnknownExtension()
	case errors.Is(err, mdpdf.ErrStylesheetNotFound):
		return hints.ForStylesheetNotFound()
	case errors.Is(err, mdpdf.ErrSourceDecode):
		return hints.ForSourceDecode()
	case errors.Is(err, mdpdf.ErrOutputWrite):
		return hints.ForOutputDirectory()
	}
	return ""
}
