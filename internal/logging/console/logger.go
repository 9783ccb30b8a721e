// Package console provides a dependency-free logger that writes one
// key=value line per entry.
package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options configures NewProvider. Zero values select stderr, time.Now and
// LevelDebug.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

type sink struct {
	mu    sync.Mutex
	out   io.Writer
	now   func() time.Time
	floor Level
}

type provider struct {
	sink *sink
}

// NewProvider returns a provider whose loggers share one writer. Stderr is the
// default so stdout stays free for command output.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{out: opts.Writer, now: opts.TimeFunc, floor: LevelDebug}
	if s.out == nil {
		s.out = os.Stderr
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.MinLevel != nil {
		s.floor = *opts.MinLevel
	}
	return &provider{sink: s}
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &logger{sink: p.sink, fields: map[string]any{"logger": name}}
}

type logger struct {
	sink   *sink
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
	child := l.clone()
	maps.Copy(child.fields, fields)
	return child
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	child := l.clone()
	child.ctx = ctx
	return child
}

func (l *logger) clone() *logger {
	fields := make(map[string]any, len(l.fields)+1)
	maps.Copy(fields, l.fields)
	return &logger{sink: l.sink, fields: fields, ctx: l.ctx}
}

func (l *logger) write(level Level, msg string, args []any) {
	if l.sink == nil || level < l.sink.floor {
		return
	}

	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	maps.Copy(fields, logging.ContextFields(l.ctx))
	for key, value := range pairs(args) {
		fields[key] = value
	}

	var line strings.Builder
	line.WriteString(l.sink.now().UTC().Format(time.RFC3339Nano))
	line.WriteByte(' ')
	line.WriteString(level.String())
	line.WriteByte(' ')
	line.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		line.WriteByte(' ')
		line.WriteString(key)
		line.WriteByte('=')
		line.WriteString(render(fields[key]))
	}
	line.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.out, line.String())
}

// pairs yields key/value args. A value without a string key, or a trailing
// value, is keyed by its pair position as field_N.
func pairs(args []any) map[string]any {
	out := make(map[string]any, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		pos := "field_" + strconv.Itoa(i/2)
		if i+1 == len(args) {
			out[pos] = args[i]
			break
		}
		if key, ok := args[i].(string); ok && key != "" {
			out[key] = args[i+1]
		} else {
			out[pos] = args[i+1]
		}
	}
	return out
}

func render(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	default:
		return quote(fmt.Sprint(v))
	}
}

// quote wraps values containing spaces, control characters, '=' or '"'.
func quote(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
