package commands

import (
	"context"
	"maps"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// DefaultTimeout bounds a single command execution.
const DefaultTimeout = 30 * time.Second

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler runs a command function behind message validation, a timeout,
// structured logging and go-errors categorisation.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fieldsFn  func(T) map[string]any
}

var _ command.Commander[command.Message] = (*Handler[command.Message])(nil)

// NewHandler panics when fn is nil.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithTimeout replaces DefaultTimeout; a non-positive value disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger sets the execution logger. Nil restores the no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = logger
		if h.logger == nil {
			h.logger = logging.NoOp()
		}
	}
}

// WithOperation names the operation in log entries.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra log fields from each message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fieldsFn = fn
	}
}

// Execute validates msg and runs the command. Errors are always categorised:
// CategoryValidation for invalid messages, CategoryCommand otherwise, unless
// the command already returned a categorised error.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return validationError(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return executionError(err)
	}

	logger := logging.WithFields(h.logger, h.fields(msg)).WithContext(ctx)
	logger.Debug("command.execute.start")
	started := time.Now()

	err := h.exec(ctx, msg)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		logger.Error("command.execute.failed", "error", err, "duration", time.Since(started))
		return executionError(err)
	}

	logger.Info("command.execute.success", "duration", time.Since(started))
	return nil
}

func (h *Handler[T]) fields(msg T) map[string]any {
	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fieldsFn != nil {
		maps.Copy(fields, h.fieldsFn(msg))
	}
	return fields
}
