package cache

import (
	"fmt"
	"time"
)

// Class names the churn profile of a cached read. Handlers declare the class
// their reads belong to instead of hardcoding durations.
type Class string

const (
	// Static is reference data that changes on a deploy or admin cycle at
	// most (states, cities).
	Static Class = "STATIC"

	// MasterData is entities edited occasionally through the UI (vendors,
	// items, categories).
	MasterData Class = "MASTER_DATA"

	// Transactional is entities mutated by the daily operational flow
	// (DMR entries, imprest entries, orders).
	Transactional Class = "TRANSACTIONAL"
)

// ParseClass maps a configuration name to a Class. Unknown names are a
// configuration error and must abort startup, never default to a guess.
func ParseClass(name string) (Class, error) {
	switch Class(name) {
	case Static, MasterData, Transactional:
		return Class(name), nil
	}
	return "", fmt.Errorf("cache: unknown TTL class %q", name)
}

// Policy maps every Class to its time-to-live.
type Policy map[Class]time.Duration

// DefaultPolicy returns the built-in TTL table.
func DefaultPolicy() Policy {
	return Policy{
		Static:        24 * time.Hour,
		MasterData:    30 * time.Minute,
		Transactional: 15 * time.Minute,
	}
}

// PolicyFromOverrides builds a policy from the defaults plus per-class
// overrides keyed by class name. It fails on the first unknown name so a
// typo in config surfaces at startup rather than at request time.
func PolicyFromOverrides(overrides map[string]time.Duration) (Policy, error) {
	p := DefaultPolicy()
	for name, d := range overrides {
		class, err := ParseClass(name)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("cache: ttl for class %s must be positive, got %s", class, d)
		}
		p[class] = d
	}
	return p, nil
}

// TTL returns the duration for class. An unknown class here is a programming
// error, not user input, so it panics.
func (p Policy) TTL(class Class) time.Duration {
	d, ok := p[class]
	if !ok {
		panic(fmt.Sprintf("cache: no TTL registered for class %q", class))
	}
	return d
}
