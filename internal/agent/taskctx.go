package agent

import (
    "context"
    "sync"
    "time"
)

// Per-task context registry so agents can honor cancellation and the task TTL.
// The parent must outlive the HTTP handler that accepted the task; callers
// pass context.Background(), never the request context.
var (
    taskCtxMu  sync.RWMutex
    taskCtx    = make(map[string]context.Context)
    taskCancel = make(map[string]context.CancelFunc)
)

// NewTaskContext creates and stores a cancelable context for a task id with the given timeout.
func NewTaskContext(parent context.Context, id string, timeout time.Duration) context.Context {
    if parent == nil {
        parent = context.Background()
    }
    ctx, cancel := context.WithTimeout(parent, timeout)
    taskCtxMu.Lock()
    taskCtx[id] = ctx
    taskCancel[id] = cancel
    taskCtxMu.Unlock()
    return ctx
}

// taskContext devuelve el contexto registrado para la tarea, o el fallback.
func taskContext(id string, fallback context.Context) context.Context {
    if ctx, ok := GetTaskContext(id); ok {
        return ctx
    }
    return fallback
}

// GetTaskContext retrieves the context for a task id, if any.
func GetTaskContext(id string) (context.Context, bool) {
    taskCtxMu.RLock()
    ctx, ok := taskCtx[id]
    taskCtxMu.RUnlock()
    return ctx, ok
}

// CancelTask cancels and removes a task context.
func CancelTask(id string) {
    taskCtxMu.Lock()
    if c, ok := taskCancel[id]; ok {
        c()
    }
    delete(taskCancel, id)
    delete(taskCtx, id)
    taskCtxMu.Unlock()
}
