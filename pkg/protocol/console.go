package protocol

import (
	"context"

	"github.com/yesoreyeram/agentweave/pkg/logging"
)

// ConsoleSink logs every frame through a structured logger. It is the
// runtime's default sink when no client connection is attached.
type ConsoleSink struct {
	logger *logging.Logger
}

// NewConsoleSink creates a ConsoleSink backed by the given logger.
func NewConsoleSink(logger *logging.Logger) *ConsoleSink {
	if logger == nil {
		logger = logging.New(logging.DefaultConfig())
	}
	return &ConsoleSink{logger: logger}
}

// Emit implements EventSink.
func (c *ConsoleSink) Emit(ctx context.Context, frame Frame) {
	l := c.logger.WithField("frame_type", string(frame.Type))
	switch data := frame.Data.(type) {
	case ConsoleEvent:
		l = l.WithField("kind", string(data.Kind))
		switch data.Kind {
		case KindError:
			l.Error(data.Message)
		case KindSuccess, KindSystem:
			l.Info(data.Message)
		default:
			l.Debug(data.Message)
		}
	case WorkflowOutputEvent:
		l.WithField("node", data.Node).WithField("details", data.Details).Debug("workflow_output")
	default:
		l.WithField("data", frame.Data).Debug("frame")
	}
}
