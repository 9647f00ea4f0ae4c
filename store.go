package cryptofolio

import (
	"bufio"
	"bytes"
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
	"sync"
	"time"
)

var (
	// ErrEmptyBatch is returned when appending a snapshot without positions.
	ErrEmptyBatch = errors.New("empty batch")
	// ErrOutOfOrder is returned when appending a batch that is not strictly
	// after the last recorded one.
	ErrOutOfOrder = errors.New("batch out of order")
)

// header of the history log.
var header = []string{"Date", "Crypto", "Valeur"}

// RowError reports a history line that could not be read.
type RowError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Store is the append-only history log, a CSV file with one record per line.
//
// Writers hold an exclusive lock on the file from reading the last batch to
// writing the new one, so that concurrent processes keep the batches in order.
// Readers do not lock: a batch is written with a single write.
type Store struct {
	path string
	// Location is the time zone of the timestamps in the file. nil means time.Local.
	Location *time.Location

	mu sync.Mutex
}

// NewStore returns the store at path. The file is created on first append.
func NewStore(path string) *Store { return &Store{path: path} }

// Path returns the location of the history file.
func (s *Store) Path() string { return s.path }

func (s *Store) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// Append records the snapshot as one batch at time at.
//
// Fallback snapshots are not recorded: Append returns false and no error.
func (s *Store) Append(snap *Snapshot, at time.Time) (bool, error) {
	if snap == nil || snap.Fallback {
		return false, nil
	}
	if len(snap.Positions) == 0 {
		return false, ErrEmptyBatch
	}
	for _, p := range snap.Positions {
		if err := checkValue(p.Value); err != nil {
			return false, fmt.Errorf("cannot record %s: %w", p.Asset, err)
		}
	}
	// the file has a one second resolution.
	at = at.In(s.location()).Truncate(time.Second)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return false, fmt.Errorf("cannot create history directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return false, fmt.Errorf("cannot open history: %w", err)
	}
	defer f.Close()
	if err := lockFile(f); err != nil {
		return false, fmt.Errorf("cannot lock history: %w", err)
	}
	defer unlockFile(f)

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("cannot stat history: %w", err)
	}
	// another process may have appended since our last call.
	h, _, err := decodeHistory(io.NewSectionReader(f, 0, info.Size()), s.location())
	if err != nil {
		return false, err
	}
	if last, ok := h.Last(); ok && !at.After(last) {
		return false, fmt.Errorf("%w: %s is not after %s", ErrOutOfOrder, at.Format(TimeLayout), last.Format(TimeLayout))
	}

	var buf bytes.Buffer
	if info.Size() > 0 {
		// an interrupted write may have left a partial last line.
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, info.Size()-1); err != nil {
			return false, fmt.Errorf("cannot read history: %w", err)
		}
		if last[0] != '\n' {
			buf.WriteByte('\n')
		}
	}
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		w.Write(header)
	}
	stamp := at.Format(TimeLayout)
	for _, p := range snap.Positions {
		w.Write([]string{stamp, p.Asset, strconv.FormatFloat(p.Value, 'f', -1, 64)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, err
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return false, fmt.Errorf("cannot write history: %w", err)
	}
	if err := f.Sync(); err != nil {
		return false, fmt.Errorf("cannot sync history: %w", err)
	}
	return true, nil
}

func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("invalid value %v", v)
	}
	return nil
}

// Load reads the whole history. Lines that cannot be parsed are skipped and
// reported as RowErrors. A missing file is an empty history.
func (s *Store) Load() (*History, []RowError, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewHistory(), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open history: %w", err)
	}
	defer f.Close()
	return decodeHistory(f, s.location())
}

// QueryWindow returns the records within [start, end].
func (s *Store) QueryWindow(start, end time.Time) ([]Record, error) {
	h, _, err := s.Load()
	if err != nil {
		return nil, err
	}
	return h.Window(start, end), nil
}

// QueryLatestPerAsset returns the most recent value of each asset at or before now.
func (s *Store) QueryLatestPerAsset(now time.Time) (map[string]Latest, error) {
	h, _, err := s.Load()
	if err != nil {
		return nil, err
	}
	return h.LatestPerAsset(now), nil
}

func decodeHistory(r io.Reader, loc *time.Location) (*History, []RowError, error) {
	var (
		records []Record
		rowErrs []RowError
	)
	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		// lines have no length limit, an oversized one is just a bad row.
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, nil, fmt.Errorf("cannot read history: %w", err)
		}
		if err == io.EOF && text == "" {
			break
		}
		text = strings.TrimRight(text, "\r\n")
		switch rec, perr := parseRecord(text, loc); {
		case strings.TrimSpace(text) == "":
		case perr == nil:
			records = append(records, rec)
		case line == 1 && isHeader(text):
		default:
			rowErrs = append(rowErrs, RowError{Line: line, Text: clip(text), Err: perr})
		}
		if err == io.EOF {
			break
		}
	}
	return NewHistory(records...), rowErrs, nil
}

// clip shortens the text of a row error.
func clip(text string) string {
	const limit = 120
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

func isHeader(text string) bool {
	return strings.EqualFold(strings.ReplaceAll(text, " ", ""), strings.Join(header, ","))
}

func parseRecord(text string, loc *time.Location) (Record, error) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = len(header)
	fields, err := cr.Read()
	if err != nil {
		return Record{}, err
	}
	t, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(fields[0]), loc)
	if err != nil {
		return Record{}, fmt.Errorf("invalid date: %w", err)
	}
	asset := strings.TrimSpace(fields[1])
	if asset == "" {
		return Record{}, errors.New("missing asset")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid value: %w", err)
	}
	if err := checkValue(v); err != nil {
		return Record{}, err
	}
	return Record{Time: t, Asset: asset, Value: v}, nil
}
