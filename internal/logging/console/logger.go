// Package console is the dependency-free logging provider the katas
// binaries fall back to when go-logger is not configured. Every entry is a
// single line: timestamp, severity, logger namespace, message, then sorted
// key=value fields.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// Level is the severity attached to a log entry.
type Level int8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// ParseLevel maps a configuration string onto a severity. Blank or unknown
// values fall back to LevelInfo, the runtime config default.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "INFO"
	}
}

// Options configures the provider. The zero value writes every severity to
// stdout using the wall clock.
type Options struct {
	Writer io.Writer
	Clock  func() time.Time
	Min    Level
}

type provider struct {
	mu    sync.Mutex
	out   io.Writer
	clock func() time.Time
	min   Level
}

// NewProvider constructs a console-backed logger provider.
func NewProvider(opts Options) interfaces.LoggerProvider {
	p := &provider{out: opts.Writer, clock: opts.Clock, min: opts.Min}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	return p
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &logger{p: p, name: name}
}

// logger carries its namespace and accumulated fields. WithFields and
// WithContext derive children; the parent is never mutated.
type logger struct {
	p      *provider
	name   string
	fields map[string]any
	ctx    context.Context
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.write(LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.write(LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.write(LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.write(LevelError, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.write(LevelFatal, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	return &logger{p: l.p, name: l.name, ctx: l.ctx, fields: merge(merge(nil, l.fields), fields)}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	return &logger{p: l.p, name: l.name, ctx: ctx, fields: merge(nil, l.fields)}
}

func (l *logger) write(level Level, msg string, args []any) {
	if level < l.p.min {
		return
	}

	// Precedence on key collisions: call args over context fields over the
	// logger's own fields.
	fields := merge(nil, l.fields)
	fields = merge(fields, logging.ContextFields(l.ctx))
	fields = merge(fields, pairs(args))

	line := render(l.p.clock().UTC(), level, l.name, msg, fields)

	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	// Diagnostics are best-effort; a failed write must not fail the build.
	_, _ = io.WriteString(l.p.out, line)
}

// merge copies src entries into dst, allocating dst on first use.
func merge(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// pairs folds variadic key/value arguments into a field map. Non-string keys
// are stringified; a trailing key without a value lands under "detail".
func pairs(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]any, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fields["detail"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = fmt.Sprint(args[i])
		}
		fields[key] = args[i+1]
	}
	return fields
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func render(ts time.Time, level Level, name, msg string, fields map[string]any) string {
	var b strings.Builder
	b.Grow(48 + len(name) + len(msg) + len(fields)*24)
	b.WriteString(ts.Format(timeLayout))
	b.WriteByte(' ')
	b.WriteString(level.String())
	if name != "" {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	b.WriteByte(' ')
	b.WriteString(msg)

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value(fields[key]))
	}
	b.WriteByte('\n')
	return b.String()
}

// value renders one field value, quoting anything a space or '=' would split.
func value(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		s = t
	case time.Time:
		s = t.UTC().Format(time.RFC3339)
	case error:
		s = t.Error()
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(v)
	}
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return strconv.Quote(s)
		}
	}
	return s
}
