package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/perftrend/perf"
)

// Columns of the performance log CSV, as written by the instrumented application:
//
//	Timestamp,EventType,OperationName,ElapsedMs,Details,MemoryMB,TabCount
const (
	colTimestamp = "Timestamp"
	colEventType = "EventType"
	colOperation = "OperationName"
	colElapsed   = "ElapsedMs"
	colDetails   = "Details"
	colMemory    = "MemoryMB"
	colLoad      = "TabCount"
)

var requiredColumns = []string{colTimestamp, colEventType, colOperation}

// logTimeLayout is the timestamp format of the log. Fractional seconds are accepted when present.
const logTimeLayout = "2006-01-02 15:04:05"

// eventDuration is a one-shot measurement row; it is analyzed as a completed operation.
const eventDuration = "DURATION"

// versionLabel derives a dataset version from a log path: its base name without extension.
func versionLabel(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadLog loads a performance log CSV file into a dataset labelled version.
// An empty version uses the file's base name.
func ReadLog(path, version string) (*perf.Dataset, error) {
	if version == "" {
		version = versionLabel(path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ds, err := DecodeLog(file, version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// DecodeLog reads a performance log CSV. Columns are located by header name; ElapsedMs,
// Details, MemoryMB and TabCount are optional. Empty numeric fields become absent values.
// START rows never carry a duration. Rows with an unknown event type are skipped.
func DecodeLog(r io.Reader, version string) (*perf.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("CSV header missing column %q", name)
		}
	}

	var records []perf.Record
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		rec, ok, err := parseLogRow(row, cols)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		logrus.Warnf("%s: skipped %d row(s) with an unknown event type", version, skipped)
	}
	logrus.Debugf("%s: decoded %d record(s)", version, len(records))
	return perf.NewDataset(version, records), nil
}

// parseLogRow converts one CSV row. ok is false for rows with an unknown event type.
func parseLogRow(row []string, cols map[string]int) (rec perf.Record, ok bool, err error) {
	field := func(name string) string {
		i, present := cols[name]
		if !present || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	event := strings.ToUpper(field(colEventType))
	if event == eventDuration {
		event = string(perf.PhaseComplete)
	}
	phase, perr := perf.ParsePhase(event)
	if perr != nil {
		return rec, false, nil
	}

	rec.Phase = phase
	rec.Operation = field(colOperation)
	rec.Details = field(colDetails)
	if rec.Timestamp, err = parseLogTime(field(colTimestamp)); err != nil {
		return rec, false, err
	}
	if phase != perf.PhaseStart {
		if rec.ElapsedMs, err = parseOptionalFloat(colElapsed, field(colElapsed)); err != nil {
			return rec, false, err
		}
	}
	if rec.MemoryMB, err = parseOptionalFloat(colMemory, field(colMemory)); err != nil {
		return rec, false, err
	}
	if v := field(colLoad); v != "" {
		n, aerr := strconv.Atoi(v)
		if aerr != nil {
			return rec, false, fmt.Errorf("parsing %s %q: %w", colLoad, v, aerr)
		}
		rec.LoadMetric = perf.Ptr(n)
	}
	return rec, true, nil
}

// parseLogTime accepts the log's own layout or RFC 3339. An empty value yields the zero time.
func parseLogTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(logTimeLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s %q: expected %q or RFC 3339", colTimestamp, v, logTimeLayout+".000")
	}
	return t, nil
}

func parseOptionalFloat(column, v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", column, v, err)
	}
	return perf.Ptr(f), nil
}
