package director

// SignalKey enumerates the signals the director folds into its indices.
type SignalKey uint8

const (
	FoodShortage    SignalKey = iota // econ_food_shortage
	Surplus                          // econ_surplus
	CrimeRate                        // crime_rate
	ActiveConflicts                  // active_conflicts
	RefugeeCount                     // refugee_count
	FactionTension                   // faction_tension

	numSignals = iota
)

var signalNames = [numSignals]string{
	"econ_food_shortage",
	"econ_surplus",
	"crime_rate",
	"active_conflicts",
	"refugee_count",
	"faction_tension",
}

// SignalKeys lists the recognised keys in canonical order.
var SignalKeys = [numSignals]SignalKey{FoodShortage, Surplus, CrimeRate, ActiveConflicts, RefugeeCount, FactionTension}

// String returns the registration name of the key.
func (k SignalKey) String() string {
	if int(k) < numSignals {
		return signalNames[k]
	}
	return "unknown"
}

// ParseSignalKey maps a registration name to a recognised key.
func ParseSignalKey(name string) (SignalKey, bool) {
	for i, n := range signalNames {
		if n == name {
			return SignalKey(i), true
		}
	}
	return 0, false
}

// Signals is the tick-scoped signal bag.
// Recognised keys live in a fixed slot table; anything else lands in the
// extra bucket, where it is kept until Reset but never read by the indices.
type Signals struct {
	values [numSignals]float64
	set    [numSignals]bool
	extra  map[string]float64
}

// Set stores value under key, replacing any earlier value for this tick.
func (s *Signals) Set(key string, value float64) {
	if k, ok := ParseSignalKey(key); ok {
		s.values[k] = value
		s.set[k] = true
		return
	}
	if s.extra == nil {
		s.extra = make(map[string]float64)
	}
	s.extra[key] = value
}

// Value returns the registered value for k, or 0 if nothing was registered.
func (s *Signals) Value(k SignalKey) float64 {
	if int(k) >= numSignals || !s.set[k] {
		return 0
	}
	return s.values[k]
}

// Lookup returns the value registered under any key, recognised or not.
func (s *Signals) Lookup(key string) (float64, bool) {
	if k, ok := ParseSignalKey(key); ok {
		return s.values[k], s.set[k]
	}
	v, ok := s.extra[key]
	return v, ok
}

// Len returns the number of distinct keys registered this tick.
func (s *Signals) Len() int {
	n := len(s.extra)
	for _, ok := range s.set {
		if ok {
			n++
		}
	}
	return n
}

// Extra returns a copy of the unrecognised registrations.
func (s *Signals) Extra() map[string]float64 {
	out := make(map[string]float64, len(s.extra))
	for k, v := range s.extra {
		out[k] = v
	}
	return out
}

// Reset empties the bag.
func (s *Signals) Reset() {
	s.values = [numSignals]float64{}
	s.set = [numSignals]bool{}
	clear(s.extra)
}
