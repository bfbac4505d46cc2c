package domain

// Thresholds bundles every fixed constant of the scoring model so tests can
// substitute alternate sets without touching scorer logic. Instances are
// treated as immutable; scorers are value-receiver methods.
type Thresholds struct {
	// Composite weights. Expected to sum to 1.
	RainWeight        float64
	TemperatureWeight float64
	WindWeight        float64
	VisibilityWeight  float64

	// Rain intensity tiers (mm/h) and probability tiers (%).
	DrizzleRate         float64
	ModerateRainRate    float64
	HeavyRainRate       float64
	ElevatedProbability float64
	HighProbability     float64

	// Apparent-temperature comfort band (degrees C).
	CoolBelow float64
	HotAbove  float64

	// Wind speed and gust tiers (km/h).
	SustainedWindOver float64
	GustCaution       float64
	GustHigh          float64

	// Sky and visibility tiers: cloud cover in %, visibility in km.
	CloudHeavy        float64
	CloudModerate     float64
	VisibilityPoor    float64
	VisibilityReduced float64
	UVHigh            float64
}

// DefaultThresholds returns the production scoring constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RainWeight:        0.40,
		TemperatureWeight: 0.25,
		WindWeight:        0.20,
		VisibilityWeight:  0.15,

		DrizzleRate:         0.2,
		ModerateRainRate:    1.0,
		HeavyRainRate:       4.0,
		ElevatedProbability: 50,
		HighProbability:     70,

		CoolBelow: 18,
		HotAbove:  32,

		SustainedWindOver: 30,
		GustCaution:       35,
		GustHigh:          55,

		CloudHeavy:        80,
		CloudModerate:     60,
		VisibilityPoor:    5,
		VisibilityReduced: 10,
		UVHigh:            7,
	}
}
