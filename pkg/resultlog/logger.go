// Package resultlog writes result envelopes to structured logs and
// traces without modifying them.
//
// A [Logger] records failed envelopes (and succeeded ones when
// configured) through log/slog. Each record carries the envelope's area,
// status, error count and correlation ID plus a JSON "details" member.
// The exception is left out of the record unless
// [Options.IncludeException] is set.
//
//	log := resultlog.New(slog.Default(), resultlog.Options{Area: "orders"})
//	res := resultlog.WithLog(ctx, log, svc.Load(ctx, id), resultlog.SeverityError)
package resultlog

import (
	"context"
	"log/slog"
	"strings"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
	"github.com/StricklySoft/stricklysoft-results/pkg/result"
)

// DefaultArea labels records from a Logger built without an area.
const DefaultArea = "results"

// Options configures a [Logger]. The tags follow the config package
// conventions so Options can be loaded as part of a settings struct.
type Options struct {
	Area             string   `env:"AREA" envDefault:"results" yaml:"area" json:"area"`
	Severity         Severity `env:"SEVERITY" envDefault:"error" yaml:"severity" json:"severity"`
	IncludeException bool     `env:"INCLUDE_EXCEPTION" envDefault:"true" yaml:"include_exception" json:"include_exception"`
	LogSucceeded     bool     `env:"LOG_SUCCEEDED" yaml:"log_succeeded" json:"log_succeeded"`
}

// DefaultOptions returns the values the envDefault tags describe.
func DefaultOptions() Options {
	return Options{Area: DefaultArea, Severity: SeverityError, IncludeException: true}
}

// Validate checks the configured severity.
func (o Options) Validate() error {
	if o.Severity != "" && !o.Severity.Valid() {
		return sserr.Newf(sserr.CodeValidation, "resultlog: unknown severity %q", o.Severity).
			WithDetail("severity", string(o.Severity))
	}
	return nil
}

// Logger writes envelopes to a slog.Logger.
type Logger struct {
	logger *slog.Logger
	opts   Options
}

// New returns a Logger writing to logger, or to slog.Default when
// logger is nil.
func New(logger *slog.Logger, opts Options) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(opts.Area) == "" {
		opts.Area = DefaultArea
	}
	if opts.Severity == "" {
		opts.Severity = SeverityError
	}
	return &Logger{logger: logger, opts: opts}
}

// WithArea returns a copy of l labelling records with area.
func (l *Logger) WithArea(area string) *Logger {
	opts := l.opts
	opts.Area = area
	return New(l.logger, opts)
}

// Options returns the effective options.
func (l *Logger) Options() Options {
	return l.opts
}

// Log records env at severity. Succeeded envelopes are skipped unless
// LogSucceeded is set; nil envelopes are always skipped. The record
// message is "[area] " followed by the envelope's message and errors.
func (l *Logger) Log(ctx context.Context, env result.Envelope, severity Severity) {
	base := baseOf(env)
	if base == nil {
		return
	}
	if base.Succeeded && !l.opts.LogSucceeded {
		return
	}
	level := severity.Level()
	if !l.logger.Enabled(ctx, level) {
		return
	}

	attrs := []slog.Attr{
		slog.String("area", l.opts.Area),
		slog.Bool("succeeded", base.Succeeded),
		slog.String("status_code", base.StatusCode.String()),
		slog.Int("error_count", len(base.Errors())),
	}
	if id, ok := CorrelationID(ctx); ok {
		attrs = append(attrs, slog.String("correlation_id", id))
	}
	if l.opts.IncludeException && base.Exception != nil {
		attrs = append(attrs, slog.Any("error", base.Exception))
	}
	if details, err := result.JSON(env, l.opts.IncludeException); err != nil {
		attrs = append(attrs, slog.String("details_error", err.Error()))
	} else {
		attrs = append(attrs, slog.String("details", string(details)))
	}

	l.logger.LogAttrs(ctx, level, "["+l.opts.Area+"] "+messageOf(env, base), attrs...)
}

// LogDefault is Log at the configured severity.
func (l *Logger) LogDefault(ctx context.Context, env result.Envelope) {
	l.Log(ctx, env, l.opts.Severity)
}

// Message records a plain message. err may be nil.
func (l *Logger) Message(ctx context.Context, msg string, severity Severity, err error) {
	attrs := []slog.Attr{slog.String("area", l.opts.Area)}
	if id, ok := CorrelationID(ctx); ok {
		attrs = append(attrs, slog.String("correlation_id", id))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	l.logger.LogAttrs(ctx, severity.Level(), "["+l.opts.Area+"] "+msg, attrs...)
}

// WithLog logs env through l and returns it unchanged, so it can wrap a
// producer call.
func WithLog[E result.Envelope](ctx context.Context, l *Logger, env E, severity Severity) E {
	l.Log(ctx, env, severity)
	return env
}

type messageOrError interface {
	GetMessageOrError() string
}

func messageOf(env result.Envelope, base *result.Result) string {
	var msg string
	if m, ok := env.(messageOrError); ok {
		msg = m.GetMessageOrError()
	}
	msg = strings.TrimRight(msg, "\n")
	if msg == "" {
		msg = base.Message
	}
	return msg
}

func baseOf(env result.Envelope) *result.Result {
	if env == nil {
		return nil
	}
	return env.Base()
}
