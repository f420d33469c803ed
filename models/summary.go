package models

// Summary holds the figures printed at the end of a run.
type Summary struct {
	TotalObservations int
	NewObservations   int
	UpdatedDates      int
	Months            int
	FirstDate         string
	LastDate          string
	MinLevel          int
	MaxLevel          int
	AverageLevel      float64
	Highest           *Observation
	Lowest            *Observation
	Latest            *Observation
}
