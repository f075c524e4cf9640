package logx

import (
	"time"

	"github.com/launchpad-ai/launchpad/internal/metrics"
)

type Timer struct {
	start time.Time
	id    string
	comp  string
	op    string
}

func Start(id, comp, op string) *Timer {
	return &Timer{
		start: time.Now(),
		id:    id,
		comp:  comp,
		op:    op,
	}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

func (t *Timer) End() {
	elapsed := time.Since(t.start)
	metrics.TaskDur.Observe(map[string]string{"operation": t.op}, elapsed.Seconds())
	Info("App", "[%s][%s][TIMING] %s = %v", t.comp, t.id, t.op, elapsed)
}
