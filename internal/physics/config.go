package physics

import "sync"

// Config carries the tunables that are legitimately configuration rather
// than compatibility constants: the body, joint and ground tables never
// live here, since those are compile-time literals a caller must never be
// able to perturb — construction of the ragdoll must never fail, and that
// only holds if those tables are fixed.
type Config struct {
	Gravity    float64
	Iterations int
	AllowSleep bool
	// DefaultSeed seeds the deterministic mixer (internal/rng) when a
	// ragdoll.Core is created, before any caller-supplied seed is known.
	DefaultSeed uint32
}

var (
	config      = defaultConfig()
	configMutex sync.RWMutex
)

func defaultConfig() Config {
	return Config{
		Gravity:     Gravity,
		Iterations:  Iterations,
		AllowSleep:  true,
		DefaultSeed: 12345,
	}
}

// GetConfig returns the current physics configuration.
func GetConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return config
}

// SetConfig installs a new physics configuration. It is intended for tests
// and for hosts that want to detune iteration counts for a faster, looser
// simulation; production training runs should leave it at defaultConfig().
func SetConfig(c Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	config = c
}
