package tracker

// Config holds the per-frame tunables from the data model's Configuration
// table. A Config is immutable once built; callers that want to change
// parameters mid-session build a new Config and hand it to
// Tracker.UpdateConfig, which swaps it in atomically.
type Config struct {
	// MinContourArea is the minimum pixel area for a contour to be
	// considered by the quad extractor.
	MinContourArea float64

	// MinFrameAreaPercent is the minimum fraction of frame area a
	// validated quad's area must reach.
	MinFrameAreaPercent float64

	// SmoothingAlpha is the EMA weight on the new observation (0,1].
	SmoothingAlpha float32

	// RequiredStableFrames is the number of consecutive stable frames
	// needed before auto-capture arms.
	RequiredStableFrames uint32

	// PostCaptureCooldownMs is the minimum wall-time between two
	// auto-captures.
	PostCaptureCooldownMs uint64

	// MinPolygonDistance is the maximum per-corner pixel displacement
	// still counted as "stable".
	MinPolygonDistance float32

	// AutoCapture disables automatic capture when false; manual trigger
	// still works regardless of this flag.
	AutoCapture bool

	// DetectionMode is reserved; it currently has no observable effect.
	DetectionMode uint8

	// StrokeColor and FillAlpha are rendering hints forwarded to
	// DrawPolygonOverlay; core detection logic never reads them.
	StrokeColor string
	FillAlpha   float32
}

// DefaultConfig returns the configuration defaults from the data model.
func DefaultConfig() *Config {
	return &Config{
		MinContourArea:        3000,
		MinFrameAreaPercent:   0.12,
		SmoothingAlpha:        0.15,
		RequiredStableFrames:  20,
		PostCaptureCooldownMs: 2500,
		MinPolygonDistance:    50,
		AutoCapture:           true,
		DetectionMode:         1,
		StrokeColor:           "#00C853",
		FillAlpha:             0.18,
	}
}

// Option mutates a Config being built by NewConfig, following the
// package's functional-options style.
type Option func(*Config)

// NewConfig builds a Config starting from DefaultConfig and applying
// opts in order.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSmoothingAlpha overrides the EMA weight.
func WithSmoothingAlpha(alpha float32) Option {
	return func(c *Config) { c.SmoothingAlpha = alpha }
}

// WithRequiredStableFrames overrides the stability threshold.
func WithRequiredStableFrames(n uint32) Option {
	return func(c *Config) { c.RequiredStableFrames = n }
}

// WithAutoCapture overrides whether auto-capture is enabled.
func WithAutoCapture(enabled bool) Option {
	return func(c *Config) { c.AutoCapture = enabled }
}

// WithCooldown overrides the post-capture cooldown, in milliseconds.
func WithCooldown(ms uint64) Option {
	return func(c *Config) { c.PostCaptureCooldownMs = ms }
}
