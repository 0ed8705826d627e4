package log

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gobuffalo/buffalo"
	"github.com/sirupsen/logrus"

	"github.com/silinternational/intake-api/domain"
)

const ContextKeySentryHub = "sentry_hub"

var mapLogrusToSentryLevel = map[logrus.Level]sentry.Level{
	logrus.PanicLevel: sentry.LevelFatal,
	logrus.FatalLevel: sentry.LevelFatal,
	logrus.ErrorLevel: sentry.LevelError,
	logrus.WarnLevel:  sentry.LevelWarning,
	logrus.InfoLevel:  sentry.LevelInfo,
	logrus.DebugLevel: sentry.LevelDebug,
	logrus.TraceLevel: sentry.LevelDebug,
}

type SentryHook struct {
	hub *sentry.Hub
}

func SentryMiddleware(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		r := c.Request()
		hub := sentry.GetHubFromContext(r.Context())

		if hub == nil {
			hub = sentry.CurrentHub().Clone()
		}

		hub.Scope().SetRequest(r)
		defer recoverWithSentry(hub, r)
		c.Set(ContextKeySentryHub, hub)
		return next(c)
	}
}

func recoverWithSentry(hub *sentry.Hub, r *http.Request) {
	if err := recover(); err != nil {
		eventID := hub.RecoverWithContext(
			context.WithValue(r.Context(), sentry.RequestContextKey, r),
			err,
		)
		if eventID != nil {
			hub.Flush(time.Second * 2)
		}
		panic(err)
	}
}

func (r *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (r *SentryHook) Fire(entry *logrus.Entry) error {
	event := eventFromEntry(entry)
	if event == nil {
		return nil
	}
	r.hub.CaptureEvent(event)
	return nil
}

// eventFromEntry builds the Sentry event for a log entry, or nil for client errors that are not worth
// reporting. Photo log entries carry the intake's group key, which becomes a tag so that all reports of
// one intake can be found together.
func eventFromEntry(entry *logrus.Entry) *sentry.Event {
	extras := entry.Data

	if extras["status"] == http.StatusBadRequest || extras["status"] == http.StatusNotFound {
		return nil
	}

	event := &sentry.Event{
		Extra:   extras,
		Level:   mapLogrusToSentryLevel[entry.Level],
		Message: entry.Message,
	}
	if groupKey, ok := extras[domain.EventPayloadGroupKey].(string); ok && groupKey != "" {
		event.Tags = map[string]string{domain.EventPayloadGroupKey: groupKey}
	}
	if c, ok := entry.Context.(buffalo.Context); ok {
		event.Request = sentry.NewRequest(c.Request())
	}
	return event
}

// NewSentryHook initializes Sentry and returns a hook for the logger. If no DSN is configured, nil is returned.
func NewSentryHook(env, commit string) *SentryHook {
	dsn := domain.Env.SentryDSN
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          commit,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		panic(fmt.Sprintf("sentry.Init: %s", err))
	}

	return &SentryHook{hub: sentry.CurrentHub()}
}
