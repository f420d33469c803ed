package models

import (
	"sort"
	"time"
)

// Observation is one freezing-level reading for a bulletin day. Date keeps the
// text as published ("15/GENNAIO/2024"); Year and Month are derived from it.
type Observation struct {
	Date  string     `json:"date"`
	Level int        `json:"level"`
	Year  int        `json:"-"`
	Month time.Month `json:"-"`
}

// NewObservation builds an Observation and fills Year/Month from date.
func NewObservation(date string, level int) (Observation, error) {
	year, month, _, err := ParseDate(date)
	if err != nil {
		return Observation{}, err
	}
	return Observation{Date: date, Level: level, Year: year, Month: month}, nil
}

// Key returns the (year, month) bucket of the observation.
func (o Observation) Key() MonthKey {
	return MonthKey{Year: o.Year, Month: o.Month}
}

// MonthKey identifies one monthly page.
type MonthKey struct {
	Year  int
	Month time.Month
}

// Less orders keys chronologically.
func (k MonthKey) Less(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Slug is the lower-case Italian month name used for page file names.
func (k MonthKey) Slug() string {
	return MonthName(k.Month)
}

// MonthlyGroup is the slice of a Dataset sharing one MonthKey.
type MonthlyGroup struct {
	Key          MonthKey
	Observations []Observation
}

// Dataset is the accumulated series, unique by Date once merged.
type Dataset []Observation

// Sort orders by (year, month) and breaks ties on the raw date text.
// The tie-break is lexical, so "10/..." sorts before "2/..." within a month.
func (d Dataset) Sort() {
	sort.SliceStable(d, func(i, j int) bool {
		a, b := d[i], d[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Date < b.Date
	})
}

// Groups splits the dataset by month, in chronological order. Observations
// keep their relative order inside each group.
func (d Dataset) Groups() []MonthlyGroup {
	index := make(map[MonthKey]int)
	var groups []MonthlyGroup

	for _, o := range d {
		k := o.Key()
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, MonthlyGroup{Key: k})
		}
		groups[i].Observations = append(groups[i].Observations, o)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key.Less(groups[j].Key)
	})
	return groups
}

// Years returns the distinct years present, ascending.
func (d Dataset) Years() []int {
	seen := make(map[int]struct{})
	var years []int
	for _, o := range d {
		if _, ok := seen[o.Year]; ok {
			continue
		}
		seen[o.Year] = struct{}{}
		years = append(years, o.Year)
	}
	sort.Ints(years)
	return years
}
