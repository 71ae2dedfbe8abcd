package observer

import (
	"context"

	"github.com/yesoreyeram/agentweave/pkg/logging"
)

// LoggingObserver writes every event through a structured logger. Workspace
// start and end log at info (a workspace end carrying an error logs at
// error); task and node failures log at warn with the error attached; every
// other event logs at debug so steady-state runs stay quiet.
type LoggingObserver struct {
	logger *logging.Logger
}

// NewLoggingObserver creates a LoggingObserver. A nil logger gets the
// default configuration.
func NewLoggingObserver(logger *logging.Logger) *LoggingObserver {
	if logger == nil {
		logger = logging.New(logging.DefaultConfig())
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements Observer.
func (o *LoggingObserver) OnEvent(_ context.Context, event Event) {
	l := o.logger.WithExecutionID(event.ExecutionID)
	if event.TaskID != "" {
		l = l.WithTaskID(event.TaskID)
	}
	if event.NodeID != "" {
		l = l.WithNodeID(event.NodeID).WithField("node_type", event.NodeType)
	}
	if event.AgentID != "" {
		l = l.WithAgentID(event.AgentID).WithField("iteration", event.Iteration)
	}
	if event.ElapsedTime > 0 {
		l = l.WithField("elapsed", event.ElapsedTime.String())
	}

	switch event.Type {
	case EventWorkspaceStart:
		l.Info(string(event.Type))
	case EventWorkspaceEnd:
		if event.Error != nil {
			l.WithError(event.Error).Error(string(event.Type))
		} else {
			l.Info(string(event.Type))
		}
	case EventTaskFailure, EventNodeFailure:
		l.WithError(event.Error).Warn(string(event.Type))
	default:
		l.Debug(string(event.Type))
	}
}
