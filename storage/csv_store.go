package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"zero-termico/models"
	"zero-termico/utils"
)

// Columns is the header of the persisted dataset.
var Columns = []string{"date", "level", "year", "month"}

// ErrMalformedDataset is returned by ReadDataset for rows it cannot use.
var ErrMalformedDataset = errors.New("malformed dataset")

// CSVStore keeps the dataset in a single CSV file.
type CSVStore struct {
	path   string
	logger *utils.Logger
}

// NewCSVStore returns a store for the file at path. The file need not exist.
func NewCSVStore(path string, logger *utils.Logger) *CSVStore {
	return &CSVStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Load reads the previous dataset. A missing, unreadable or malformed file
// yields an empty dataset; the problem is logged and never returned.
func (s *CSVStore) Load() models.Dataset {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("[loader] No existing dataset at %s, starting empty", s.path)
		} else {
			s.logger.Warn("[loader] Cannot open %s: %v, starting empty", s.path, err)
		}
		return models.Dataset{}
	}
	defer f.Close()

	ds, err := ReadDataset(f)
	if err != nil {
		s.logger.Warn("[loader] Ignoring %s: %v, starting empty", s.path, err)
		return models.Dataset{}
	}

	s.logger.Info("[loader] Loaded %d observations from %s", len(ds), s.path)
	return ds
}

// Save replaces the file with ds. Rows go to a temporary file in the same
// directory which is then renamed over the target.
func (s *CSVStore) Save(ds models.Dataset) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("csv: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteDataset(tmp, ds); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csv: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("csv: replace %q: %w", s.path, err)
	}

	s.logger.Info("[storage] Saved %d observations to %s", len(ds), s.path)
	return nil
}

// WriteDataset writes the header and one row per observation.
func WriteDataset(w io.Writer, ds models.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, o := range ds {
		row := []string{
			o.Date,
			strconv.Itoa(o.Level),
			strconv.Itoa(o.Year),
			strconv.Itoa(int(o.Month)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadDataset parses a dataset written by WriteDataset. Columns are located
// by header name; year and month are recomputed from the date text. Any bad
// row fails the whole read.
func ReadDataset(r io.Reader) (models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	if len(records) == 0 {
		return models.Dataset{}, nil
	}

	dateCol, levelCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "level":
			levelCol = i
		}
	}
	if dateCol < 0 || levelCol < 0 {
		return nil, fmt.Errorf("%w: header %v lacks date/level", ErrMalformedDataset, records[0])
	}

	ds := make(models.Dataset, 0, len(records)-1)
	for n, row := range records[1:] {
		line := n + 2
		if dateCol >= len(row) || levelCol >= len(row) {
			return nil, fmt.Errorf("%w: line %d is short", ErrMalformedDataset, line)
		}

		level, err := parseLevel(row[levelCol])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedDataset, line, err)
		}
		o, err := models.NewObservation(strings.TrimSpace(row[dateCol]), level)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedDataset, line, err)
		}
		ds = append(ds, o)
	}
	return ds, nil
}

// parseLevel accepts "1300" and float renderings such as "1300.0".
func parseLevel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("level %q is not a number", s)
	}
	return int(f), nil
}
