package bootstrap

import "context"

// AuditLog is one operational audit entry, such as a server lifecycle event
// or a scheduler run.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
