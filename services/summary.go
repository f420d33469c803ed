package services

import (
	"fmt"
	"io"
	"strings"

	"zero-termico/models"
	"zero-termico/utils"
)

// SummaryService computes and prints the end-of-run report.
type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate summarises ds. First/Last/Latest use calendar order, not the
// lexical order the dataset is stored in.
func (s *SummaryService) Generate(ds models.Dataset, stats MergeStats) *models.Summary {
	r := &models.Summary{
		NewObservations: stats.Added,
		UpdatedDates:    stats.Updated,
	}
	if len(ds) == 0 {
		return r
	}

	r.TotalObservations = len(ds)
	r.Months = len(ds.Groups())

	var (
		total         int
		first, latest *models.Observation
		firstDay      int
		latestDay     int
	)
	for i := range ds {
		o := &ds[i]
		total += o.Level

		if r.Highest == nil || o.Level > r.Highest.Level {
			r.Highest = o
		}
		if r.Lowest == nil || o.Level < r.Lowest.Level {
			r.Lowest = o
		}

		_, _, day, err := models.ParseDate(o.Date)
		if err != nil {
			s.logger.Debug("[summary] Skipping %q for date range: %v", o.Date, err)
			continue
		}
		if first == nil || before(o, day, first, firstDay) {
			first, firstDay = o, day
		}
		if latest == nil || before(latest, latestDay, o, day) {
			latest, latestDay = o, day
		}
	}

	r.MinLevel = r.Lowest.Level
	r.MaxLevel = r.Highest.Level
	r.AverageLevel = round1(float64(total) / float64(len(ds)))
	if first != nil {
		r.FirstDate = first.Date
	}
	if latest != nil {
		r.LastDate = latest.Date
		r.Latest = latest
	}
	return r
}

func before(a *models.Observation, aDay int, b *models.Observation, bDay int) bool {
	if a.Key() != b.Key() {
		return a.Key().Less(b.Key())
	}
	return aDay < bDay
}

func (s *SummaryService) Print(w io.Writer, r *models.Summary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintf(w, "  ZERO TERMICO · RIEPILOGO\n")
	fmt.Fprintf(w, "%s\n\n", sep)

	fmt.Fprintf(w, "  Dataset\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Osservazioni totali : %d\n", r.TotalObservations)
	fmt.Fprintf(w, "  Nuove date          : %d\n", r.NewObservations)
	fmt.Fprintf(w, "  Date aggiornate     : %d\n", r.UpdatedDates)
	fmt.Fprintf(w, "  Mesi coperti        : %d\n", r.Months)
	if r.FirstDate != "" {
		fmt.Fprintf(w, "  Periodo             : %s → %s\n", r.FirstDate, r.LastDate)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Quota (metri)\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.TotalObservations == 0 {
		fmt.Fprintf(w, "  Nessun dato disponibile\n")
	} else {
		fmt.Fprintf(w, "  Media   : %.1f\n", r.AverageLevel)
		fmt.Fprintf(w, "  Minima  : %d (%s)\n", r.MinLevel, r.Lowest.Date)
		fmt.Fprintf(w, "  Massima : %d (%s)\n", r.MaxLevel, r.Highest.Date)
		if r.Latest != nil {
			fmt.Fprintf(w, "  Ultima  : %d (%s)\n", r.Latest.Level, r.Latest.Date)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", sep)
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
