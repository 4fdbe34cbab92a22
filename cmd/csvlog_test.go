package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/perftrend/perf"
)

const sampleLog = `Timestamp,EventType,OperationName,ElapsedMs,Details,MemoryMB,TabCount
2025-06-01 10:00:00.000,START,Variable_Check,0,"tab 1",40.0,1
2025-06-01 10:00:00.400,COMPLETE,Variable_Check,400,"tab 1",40.5,1
2025-06-01 10:00:01.000,DURATION,Create_New_Tab,150,"created, tab 2",41.0,2
2025-06-01 10:00:02.000,COMPLETE,Variable_Check,,"",41.0,2
2025-06-01 10:00:03.000,ERROR,Variable_Check,90,"timeout",,2
2025-06-01 10:00:04.000,PAUSE,Variable_Check,1,"",41.0,2
`

func TestDecodeLog_PerformanceLoggerFormat(t *testing.T) {
	// GIVEN a log written by the instrumented application
	// WHEN decoded
	ds, err := DecodeLog(strings.NewReader(sampleLog), "v1")

	// THEN every known event becomes a record in arrival order
	require.NoError(t, err)
	assert.Equal(t, "v1", ds.Version())
	recs := ds.Records()
	require.Len(t, recs, 5)

	// AND START rows carry no duration
	assert.Equal(t, perf.PhaseStart, recs[0].Phase)
	assert.Nil(t, recs[0].ElapsedMs)
	require.NotNil(t, recs[0].LoadMetric)
	assert.Equal(t, 1, *recs[0].LoadMetric)
	assert.Equal(t, 40.0, *recs[0].MemoryMB)

	// AND timestamps keep milliseconds
	want := time.Date(2025, 6, 1, 10, 0, 0, 400*int(time.Millisecond), time.UTC)
	assert.True(t, want.Equal(recs[1].Timestamp), "got %v", recs[1].Timestamp)
	assert.Equal(t, 400.0, *recs[1].ElapsedMs)
	assert.True(t, recs[1].Timed())

	// AND DURATION rows are completed operations with quoted details intact
	assert.Equal(t, perf.PhaseComplete, recs[2].Phase)
	assert.Equal(t, "created, tab 2", recs[2].Details)
	assert.True(t, recs[2].LoadAttributed())

	// AND an empty duration on a COMPLETE row is malformed
	assert.True(t, recs[3].Malformed())

	// AND empty memory is absent
	assert.Equal(t, perf.PhaseError, recs[4].Phase)
	assert.Nil(t, recs[4].MemoryMB)
	assert.Equal(t, 90.0, *recs[4].ElapsedMs)
}

func TestDecodeLog_ColumnsByName(t *testing.T) {
	log := "OperationName,EventType,Timestamp,ElapsedMs\nSearch,complete,2025-06-01T10:00:00Z,12.5\n"

	ds, err := DecodeLog(strings.NewReader(log), "v")

	require.NoError(t, err)
	recs := ds.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "Search", recs[0].Operation)
	assert.Equal(t, perf.PhaseComplete, recs[0].Phase)
	assert.Equal(t, 12.5, *recs[0].ElapsedMs)
	assert.Nil(t, recs[0].LoadMetric)
	assert.Nil(t, recs[0].MemoryMB)
}

func TestDecodeLog_HeaderOnly_EmptyDataset(t *testing.T) {
	ds, err := DecodeLog(strings.NewReader("Timestamp,EventType,OperationName\n"), "v")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestDecodeLog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		log     string
		errPart string
	}{
		{"empty input", "", "reading CSV header"},
		{"missing column", "Timestamp,OperationName\n", `missing column "EventType"`},
		{"bad timestamp", "Timestamp,EventType,OperationName\nyesterday,COMPLETE,A\n", "line 2"},
		{"bad elapsed", "Timestamp,EventType,OperationName,ElapsedMs\n,COMPLETE,A,fast\n", "ElapsedMs"},
		{"bad load", "Timestamp,EventType,OperationName,TabCount\n,COMPLETE,A,many\n", "TabCount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLog(strings.NewReader(tt.log), "v")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestReadLog_VersionFromFileName(t *testing.T) {
	path := writeTemp(t, "v2_optimized.csv", sampleLog)

	ds, err := ReadLog(path, "")
	require.NoError(t, err)
	assert.Equal(t, "v2_optimized", ds.Version())

	labelled, err := ReadLog(path, "finetuned")
	require.NoError(t, err)
	assert.Equal(t, "finetuned", labelled.Version())
}
