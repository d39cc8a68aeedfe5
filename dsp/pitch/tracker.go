package pitch

// Default tracker constants.
const (
	// DefaultMinPeakPower is the weak-signal gate on peak power.
	DefaultMinPeakPower = 3.0
	// DefaultFloorHz is the lowest frequency reported as a pitch.
	DefaultFloorHz = 10.0
	// DefaultDecay scales the estimate on every rejected pass.
	DefaultDecay = 0.9
	// DefaultSnapHz is where a decaying estimate snaps to zero.
	DefaultSnapHz = 1.0
	// DefaultAlpha is the smoothing weight of a new estimate.
	DefaultAlpha = 0.30
)

// TrackerConfig holds the gate and smoothing constants of a Tracker.
type TrackerConfig struct {
	// MinPeakPower is the weak-signal gate on the peak's squared magnitude.
	MinPeakPower float64
	// FloorHz is the lowest frequency treated as a pitch.
	FloorHz float64
	// Decay multiplies the smoothed frequency on rejected passes.
	Decay float64
	// SnapHz is the level below which a decaying estimate becomes exactly 0.
	SnapHz float64
	// Alpha is the exponential smoothing weight of a new estimate.
	Alpha float64
}

// TrackerOption mutates a TrackerConfig.
type TrackerOption func(*TrackerConfig)

// DefaultTrackerConfig returns the tuner's gate and smoothing constants.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		MinPeakPower: DefaultMinPeakPower,
		FloorHz:      DefaultFloorHz,
		Decay:        DefaultDecay,
		SnapHz:       DefaultSnapHz,
		Alpha:        DefaultAlpha,
	}
}

// WithMinPeakPower sets the weak-signal gate. Negative values are ignored.
func WithMinPeakPower(p float64) TrackerOption {
	return func(c *TrackerConfig) {
		if p >= 0 {
			c.MinPeakPower = p
		}
	}
}

// WithAlpha sets the smoothing weight. Values outside (0, 1] are ignored.
func WithAlpha(alpha float64) TrackerOption {
	return func(c *TrackerConfig) {
		if alpha > 0 && alpha <= 1 {
			c.Alpha = alpha
		}
	}
}

// WithDecay sets the rejected-pass decay factor. Values outside [0, 1) are ignored.
func WithDecay(decay float64) TrackerOption {
	return func(c *TrackerConfig) {
		if decay >= 0 && decay < 1 {
			c.Decay = decay
		}
	}
}

// Reading is the outcome of one tracker update.
type Reading struct {
	// Weak is set when the peak failed the weak-signal gate.
	Weak bool
	// Frequency is the smoothed frequency in Hz.
	Frequency float64
	// HasNote is set when Frequency is at or above the validity floor.
	HasNote bool
	Note    Note
}

// Tracker smooths per-frame estimates into a stable frequency.
// The zero value is not usable; use NewTracker.
type Tracker struct {
	cfg      TrackerConfig
	smoothed float64
}

// NewTracker returns a tracker with no prior estimate.
func NewTracker(opts ...TrackerOption) *Tracker {
	cfg := DefaultTrackerConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Tracker{cfg: cfg}
}

// Config returns the tracker constants.
func (t *Tracker) Config() TrackerConfig { return t.cfg }

// Smoothed returns the current smoothed frequency.
func (t *Tracker) Smoothed() float64 { return t.smoothed }

// Reset forgets the smoothed estimate.
func (t *Tracker) Reset() { t.smoothed = 0 }

// Update folds one frame's raw estimate and peak power into the smoothed
// frequency and maps the result against ref (A4, default when ≤ 0).
func (t *Tracker) Update(rawHz, peakPower, ref float64) Reading {
	if peakPower < t.cfg.MinPeakPower {
		t.decay()
		return Reading{Weak: true, Frequency: t.smoothed, Note: Note{Name: "--"}}
	}

	switch {
	case rawHz < t.cfg.FloorHz:
		t.decay()
	case t.smoothed <= 0:
		t.smoothed = rawHz
	default:
		t.smoothed = (1-t.cfg.Alpha)*t.smoothed + t.cfg.Alpha*rawHz
	}

	r := Reading{Frequency: t.smoothed, Note: Note{Name: "--"}}
	if t.smoothed < t.cfg.FloorHz {
		return r
	}

	r.Note, r.HasNote = NoteFromFrequency(t.smoothed, ref)
	return r
}

func (t *Tracker) decay() {
	t.smoothed *= t.cfg.Decay
	if t.smoothed < t.cfg.SnapHz {
		t.smoothed = 0
	}
}
