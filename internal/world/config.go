package world

// Config carries the static world parameters. Zero values are replaced by
// safe defaults in normalized() so a partially filled config never panics
// the simulation.
type Config struct {
	// Width and Height bound entity positions in world units.
	Width  float64
	Height float64

	// Seed drives the world RNG. Zero picks the default seed, keeping
	// deterministic replays opt-in rather than accidental.
	Seed int64

	// DrainSeconds is how long a drain interaction on a corpse takes.
	DrainSeconds float64

	// DrainRange is how far a drainer may stand from the corpse before the
	// drain cancels.
	DrainRange float64
}

const (
	defaultWidth        = 2000
	defaultHeight       = 2000
	defaultSeed         = 1
	defaultDrainSeconds = 2.5
	defaultDrainRange   = 40
)

// DefaultConfig returns the baseline world parameters.
func DefaultConfig() Config {
	return Config{
		Width:        defaultWidth,
		Height:       defaultHeight,
		Seed:         defaultSeed,
		DrainSeconds: defaultDrainSeconds,
		DrainRange:   defaultDrainRange,
	}
}

func (c Config) normalized() Config {
	out := c
	if out.Width <= 0 {
		out.Width = defaultWidth
	}
	if out.Height <= 0 {
		out.Height = defaultHeight
	}
	if out.Seed == 0 {
		out.Seed = defaultSeed
	}
	if out.DrainSeconds <= 0 {
		out.DrainSeconds = defaultDrainSeconds
	}
	if out.DrainRange <= 0 {
		out.DrainRange = defaultDrainRange
	}
	return out
}
