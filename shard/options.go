package shard

import "github.com/shunpeizhang/weaver/metrics"

// Option configures a Runtime at construction time.
type Option func(*Runtime)

// WithWorkerCount overrides the WorkerPool's goroutine count. The
// default is runtime.GOMAXPROCS(0), set by WorkerPool itself.
func WithWorkerCount(n int) Option {
	return func(rt *Runtime) { rt.workerCount = n }
}

// WithLogger installs l as the Runtime's logger, replacing the default
// no-op logger.
func WithLogger(l *Logger) Option {
	return func(rt *Runtime) { rt.logger = l }
}

// WithMetrics installs obs as the Runtime's metrics.Observer, replacing
// the default metrics.NoopObserver.
func WithMetrics(obs metrics.Observer) Option {
	return func(rt *Runtime) { rt.metrics = obs }
}
