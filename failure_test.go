package rohc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedricde/rohc/logging"
	"github.com/cedricde/rohc/types"
)

func TestFailureReporterDumpsStatsDiffAndTraces(t *testing.T) {
	log := testLogger()
	traces := logging.NewTraceLog(log, false)
	traces.Record(types.TraceDebug, types.EntityCompressor, 1, "building IR packet")
	traces.Record(types.TraceError, types.EntityDecompressor, 1, "CRC check failed")

	out := &bytes.Buffer{}
	reporter := NewFailureReporter(traces, log)
	reporter.out = out

	result := types.Result{
		Outcome:   types.OutcomeMismatch,
		CID:       7,
		Reference: []byte{1, 2, 3, 4},
		Actual:    []byte{1, 2, 0xff, 4},
	}
	stats := Stats{Matches: 41, Mismatches: 1}

	require.Panics(t, func() { reporter.Fail(42, stats, result) })

	report := out.String()
	assert.Contains(t, report, "packet #42, CID 7")
	assert.Contains(t, report, "stats OK, ERR(COMP), ERR(DECOMP), ERR(REF), ERR(BAD), ERR(INTERNAL)\t=\t41\t0\t0\t1\t0\t0")
	assert.Contains(t, report, "#0xff#")
	assert.Contains(t, report, "print the last 2 traces...")
	assert.Contains(t, report, "building IR packet")
	assert.Contains(t, report, "CRC check failed")
}

func TestFailureReporterWithEmptyTraceHistory(t *testing.T) {
	log := testLogger()
	out := &bytes.Buffer{}
	reporter := NewFailureReporter(logging.NewTraceLog(log, false), log)
	reporter.out = out

	result := types.Result{Outcome: types.OutcomeCompressionFailure}
	require.Panics(t, func() { reporter.Fail(1, Stats{CompressionFailures: 1}, result) })

	assert.Contains(t, out.String(), "no trace to display")
}
