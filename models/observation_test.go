package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustObservation(t *testing.T, date string, level int) Observation {
	t.Helper()
	o, err := NewObservation(date, level)
	if err != nil {
		t.Fatalf("NewObservation(%q): %v", date, err)
	}
	return o
}

func TestNewObservationDerivesYearMonth(t *testing.T) {
	o := mustObservation(t, "15/GENNAIO/2024", 1300)
	if o.Year != 2024 || o.Month != time.January {
		t.Errorf("got %d/%v; want 2024/January", o.Year, o.Month)
	}
	if _, err := NewObservation("15/FOO/2024", 1); err == nil {
		t.Error("expected error for unknown month")
	}
}

func TestDatasetSortLexicalTieBreak(t *testing.T) {
	d := Dataset{
		mustObservation(t, "2/marzo/2024", 1),
		mustObservation(t, "5/gennaio/2025", 2),
		mustObservation(t, "10/marzo/2024", 3),
		mustObservation(t, "20/febbraio/2024", 4),
	}
	d.Sort()

	var got []string
	for _, o := range d {
		got = append(got, o.Date)
	}
	want := []string{"20/febbraio/2024", "10/marzo/2024", "2/marzo/2024", "5/gennaio/2025"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort order mismatch (-want +got):\n%s", diff)
	}
}

func TestDatasetGroupsAndYears(t *testing.T) {
	d := Dataset{
		mustObservation(t, "1/gennaio/2025", 900),
		mustObservation(t, "1/dicembre/2024", 1100),
		mustObservation(t, "2/dicembre/2024", 1200),
	}

	groups := d.Groups()
	if len(groups) != 2 {
		t.Fatalf("groups: got %d, want 2", len(groups))
	}
	if groups[0].Key != (MonthKey{Year: 2024, Month: time.December}) {
		t.Errorf("first group key = %+v", groups[0].Key)
	}
	if len(groups[0].Observations) != 2 {
		t.Errorf("december observations: got %d, want 2", len(groups[0].Observations))
	}
	if groups[1].Key.Slug() != "gennaio" {
		t.Errorf("second group slug = %q", groups[1].Key.Slug())
	}

	if diff := cmp.Diff([]int{2024, 2025}, d.Years()); diff != "" {
		t.Errorf("years mismatch (-want +got):\n%s", diff)
	}
}
