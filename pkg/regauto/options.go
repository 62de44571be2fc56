package regauto

import "io"

type options struct {
	verbose   bool
	logOutput io.Writer
}

// Option configures a pipeline call.
type Option func(*options)

// WithVerbose logs every pipeline stage.
func WithVerbose(enabled bool) Option {
	return func(o *options) {
		o.verbose = enabled
	}
}

// WithLogOutput sets the destination of verbose logs. The default is stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		o.logOutput = w
	}
}
