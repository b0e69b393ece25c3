package domain

// Tracker identifies an independently scheduled habit.
type Tracker string

const (
	TrackerHydration Tracker = "hydration"
	TrackerCalories  Tracker = "calories"
	TrackerSleep     Tracker = "sleep"
)

func (t Tracker) String() string {
	return string(t)
}

// TrackerConfig describes the unit, default goal and reminder copy of a tracker.
type TrackerConfig struct {
	Tracker       Tracker
	Name          string
	Unit          string
	DefaultGoal   float64
	ReminderTitle string
	ReminderBody  string
}

var trackerConfigs = map[Tracker]TrackerConfig{
	TrackerHydration: {
		Tracker:       TrackerHydration,
		Name:          "Hydration",
		Unit:          "ml",
		DefaultGoal:   2000,
		ReminderTitle: "Time to hydrate",
		ReminderBody:  "Drink some water to keep your body healthy",
	},
	TrackerCalories: {
		Tracker:       TrackerCalories,
		Name:          "Calories",
		Unit:          "kcal",
		DefaultGoal:   2000,
		ReminderTitle: "Time for a meal",
		ReminderBody:  "Log what you ate to stay on track",
	},
	TrackerSleep: {
		Tracker:       TrackerSleep,
		Name:          "Sleep",
		Unit:          "hours",
		DefaultGoal:   8,
		ReminderTitle: "Time to rest",
		ReminderBody:  "Wind down and get some sleep",
	},
}

// LookupTracker returns the configuration of a known tracker.
func LookupTracker(name string) (TrackerConfig, error) {
	cfg, ok := trackerConfigs[Tracker(name)]
	if !ok {
		return TrackerConfig{}, ErrUnknownTracker
	}
	return cfg, nil
}

func Trackers() []Tracker {
	return []Tracker{TrackerHydration, TrackerCalories, TrackerSleep}
}
