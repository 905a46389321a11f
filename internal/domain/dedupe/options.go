package dedupe

// Option configures the in-memory deduper.
type Option func(*window)

// WithMaxSize bounds the number of remembered ids. Non-positive values keep
// every id.
func WithMaxSize(maxSize int) Option {
	return func(w *window) {
		w.maxSize = maxSize
	}
}
