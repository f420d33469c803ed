package services

import (
	"zero-termico/models"
	"zero-termico/utils"
)

// MergeStats counts how the fresh readings changed the dataset.
type MergeStats struct {
	Added     int
	Updated   int
	Unchanged int
}

// Merger folds freshly scraped readings into the stored dataset.
type Merger struct {
	logger *utils.Logger
}

// NewMerger creates a Merger with the given logger.
func NewMerger(logger *utils.Logger) *Merger {
	return &Merger{logger: logger}
}

// Merge appends fresh after existing, keeps the last observation for every
// date, and sorts the result by (year, month, date text). Fresh readings thus
// replace stored ones for the same date. Observations whose date cannot be
// placed in a month are dropped.
func (m *Merger) Merge(existing models.Dataset, fresh []models.Observation) (models.Dataset, MergeStats) {
	previous := make(map[string]int, len(existing))
	for _, o := range existing {
		previous[o.Date] = o.Level
	}

	order := make([]string, 0, len(existing)+len(fresh))
	latest := make(map[string]models.Observation, len(existing)+len(fresh))
	put := func(o models.Observation) {
		if o.Year == 0 || o.Month == 0 {
			derived, err := models.NewObservation(o.Date, o.Level)
			if err != nil {
				m.logger.Warn("[merger] Dropping observation: %v", err)
				return
			}
			o = derived
		}
		if _, seen := latest[o.Date]; !seen {
			order = append(order, o.Date)
		}
		latest[o.Date] = o
	}

	for _, o := range existing {
		put(o)
	}
	freshDates := make(map[string]struct{}, len(fresh))
	for _, o := range fresh {
		put(o)
		freshDates[o.Date] = struct{}{}
	}

	var stats MergeStats
	for date := range freshDates {
		o, ok := latest[date]
		if !ok {
			continue
		}
		old, existed := previous[date]
		switch {
		case !existed:
			stats.Added++
		case old != o.Level:
			stats.Updated++
			m.logger.Debug("[merger] %s: %d → %d m", date, old, o.Level)
		default:
			stats.Unchanged++
		}
	}

	merged := make(models.Dataset, 0, len(order))
	for _, date := range order {
		merged = append(merged, latest[date])
	}
	merged.Sort()

	m.logger.Info("[merger] %d stored + %d scraped → %d observations (new %d, updated %d, unchanged %d)",
		len(existing), len(fresh), len(merged), stats.Added, stats.Updated, stats.Unchanged)
	return merged, stats
}
