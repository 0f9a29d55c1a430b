// Package costcheck validates cost breakdown workbooks against a brand
// ruleset and collects one result per file.
package costcheck

import "go.uber.org/zap"

// Options configures processing.
type Options struct {
	// Sheet forces a sheet name, overriding the ruleset's selector.
	Sheet string
	// Logger receives per-file progress. Nil means no logging.
	Logger *zap.Logger
}

// DefaultOptions returns default processing options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
