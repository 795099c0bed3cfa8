package report

import (
	"fmt"
	"runtime"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Severity tells a handler how to respond to a report.
type Severity uint8

const (
	SeverityError    Severity = iota // should interrupt, must be reported
	SeverityWarning                  // may interrupt, should be reported
	SeverityAlert                    // should not interrupt, may be reported
	SeverityExpected                 // not an issue, not reported
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityAlert:
		return "alert"
	case SeverityExpected:
		return "expected"
	default:
		return "error"
	}
}

// level maps a severity to the log level its reports are written at.
func (s Severity) level() zerolog.Level {
	switch s {
	case SeverityWarning:
		return zerolog.WarnLevel
	case SeverityAlert:
		return zerolog.InfoLevel
	case SeverityExpected:
		return zerolog.Disabled
	default:
		return zerolog.ErrorLevel
	}
}

// Advice is the diagnostic metadata attached to a report.
type Advice struct {
	Severity Severity
	Code     string
	Help     string
	URL      string
}

var kindAdvice = map[Kind]Advice{
	KindInvalidConfig: {
		Severity: SeverityError,
		Code:     "picking::config",
		Help:     "check the PICKING_* environment variables",
	},
	KindScriptParse: {
		Severity: SeverityError,
		Code:     "picking::script",
		Help:     "scripts are JSON objects with a non-empty \"steps\" array",
	},
	KindDuplicatePointer: {
		Severity: SeverityWarning,
		Code:     "picking::duplicate_pointer",
		Help:     "despawn the existing pointer before spawning the id again",
	},
	KindUnknownPointer: {
		Severity: SeverityAlert,
		Code:     "picking::unknown_pointer",
	},
	KindPluginSetup: {
		Severity: SeverityError,
		Code:     "picking::plugins",
		Help:     "enable the plugins this plugin depends on",
	},
}

// AdviceFor returns the default advice for kind.
func AdviceFor(kind Kind) Advice {
	if a, ok := kindAdvice[kind]; ok {
		return a
	}
	return Advice{Severity: SeverityError}
}

// Report is an error prepared for display: the error, its advice, and the
// source location where the report was created.
type Report struct {
	err      error
	advice   Advice
	location string
	count    int
}

// From builds a report for err, taking default advice from its kind. Any
// error is accepted; errors from outside this module are reported as
// KindExternal. From returns nil for a nil error.
func From(err error) *Report {
	if err == nil {
		return nil
	}
	r := &Report{err: err, advice: AdviceFor(KindOf(err))}
	if _, file, line, ok := runtime.Caller(1); ok {
		r.location = fmt.Sprintf("%s:%d", file, line)
	}
	return r
}

// WithSeverity overrides the severity.
func (r *Report) WithSeverity(s Severity) *Report {
	r.advice.Severity = s
	return r
}

// WithCode overrides the code.
func (r *Report) WithCode(code string) *Report {
	r.advice.Code = code
	return r
}

// WithHelp overrides the help message.
func (r *Report) WithHelp(help string) *Report {
	r.advice.Help = help
	return r
}

// WithURL overrides the reference URL.
func (r *Report) WithURL(url string) *Report {
	r.advice.URL = url
	return r
}

func (r *Report) Error() string { return r.err.Error() }

// Unwrap returns the reported error.
func (r *Report) Unwrap() error { return r.err }

// Advice returns the report's advice.
func (r *Report) Advice() Advice { return r.advice }

// Kind returns the kind of the reported error.
func (r *Report) Kind() Kind { return KindOf(r.err) }

// Location returns file:line of the call to From.
func (r *Report) Location() string { return r.location }

// Count returns how many times an equivalent report had been emitted before
// this one by the Reporter that emitted it.
func (r *Report) Count() int { return r.count }

// Reporter writes reports to a zerolog logger and counts repeats.
type Reporter struct {
	logger zerolog.Logger
	seen   map[string]int
}

// NewReporter returns a Reporter writing to logger.
func NewReporter(logger zerolog.Logger) *Reporter {
	return &Reporter{logger: logger, seen: make(map[string]int)}
}

// Emit writes r. Reports with SeverityExpected are counted but not written.
// Emit is a no-op for a nil report.
func (rp *Reporter) Emit(r *Report) {
	if r == nil {
		return
	}
	key := r.advice.Code + "\x00" + r.err.Error()
	r.count = rp.seen[key]
	rp.seen[key]++

	lvl := r.advice.Severity.level()
	if lvl == zerolog.Disabled {
		return
	}
	ev := rp.logger.WithLevel(lvl).
		Str("kind", r.Kind().String()).
		Str("severity", r.advice.Severity.String()).
		Str("location", r.location).
		Int("count", r.count).
		Interface("trace", eris.ToJSON(r.err, true))
	if r.advice.Code != "" {
		ev = ev.Str("code", r.advice.Code)
	}
	if r.advice.Help != "" {
		ev = ev.Str("help", r.advice.Help)
	}
	if r.advice.URL != "" {
		ev = ev.Str("url", r.advice.URL)
	}
	ev.Msg(r.err.Error())
}
