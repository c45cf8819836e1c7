package services

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// ErrorReporter forwards flow failures to an external error tracker.
type ErrorReporter interface {
	Report(ctx context.Context, flow string, err error)
}

// NopReporter drops every report.
type NopReporter struct{}

func (NopReporter) Report(context.Context, string, error) {}

// SentryReporter sends flow failures to Sentry, tagged with the flow name.
// sentry.Init must have been called.
type SentryReporter struct{}

func (SentryReporter) Report(ctx context.Context, flow string, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("flow", flow)
		hub.CaptureException(err)
	})
}
