package rohc

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedricde/rohc/logging"
	"github.com/cedricde/rohc/types"
)

type fakeSource struct {
	frames []types.Frame
	pos    int
	closed bool
	onRead func(served int)
}

func (s *fakeSource) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	if s.pos >= len(s.frames) {
		return nil, gopacket.CaptureInfo{}, io.EOF
	}
	frame := s.frames[s.pos]
	s.pos++
	if s.onRead != nil {
		s.onRead(s.pos)
	}
	return frame.Data, frame.CaptureInfo, nil
}

func (s *fakeSource) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type testHarness struct {
	sniffer  *Sniffer
	verifier *Verifier
	source   *fakeSource
	report   *bytes.Buffer
}

func newTestHarness(t *testing.T, codec types.Codec, frames []types.Frame) *testHarness {
	t.Helper()
	log := testLogger()
	traces := logging.NewTraceLog(log, false)
	dumps := logging.NewDumpManager(t.TempDir(), 16, layers.LinkTypeEthernet, log)
	verifier, err := NewVerifier(codec, dumps, layers.LinkTypeEthernet, log)
	require.NoError(t, err)

	report := &bytes.Buffer{}
	failure := NewFailureReporter(traces, log)
	failure.out = report

	source := &fakeSource{frames: frames}
	sniffer := NewSniffer(source, verifier, failure, dumps, log)
	sniffer.progress = io.Discard

	return &testHarness{
		sniffer:  sniffer,
		verifier: verifier,
		source:   source,
		report:   report,
	}
}

func makeTestFrames(t *testing.T, n int) []types.Frame {
	t.Helper()
	frames := make([]types.Frame, n)
	for i := range frames {
		frames[i] = makeUDPFrame(t, []byte{byte(i), 1, 2, 3, 4, 5, 6, 7})
	}
	return frames
}

func TestSnifferRunMatchesWholeCapture(t *testing.T) {
	codec := &fakeCodec{}
	h := newTestHarness(t, codec, makeTestFrames(t, 5))

	require.NoError(t, h.sniffer.Run())

	assert.Equal(t, uint64(5), h.sniffer.Count())
	assert.Equal(t, uint64(5), h.verifier.Stats().Matches)
	assert.Empty(t, h.report.String())
}

func TestSnifferAbortsAtFirstMismatch(t *testing.T) {
	codec := &fakeCodec{corruptAt: 3}
	h := newTestHarness(t, codec, makeTestFrames(t, 5))

	require.Panics(t, func() { h.sniffer.Run() })

	stats := h.verifier.Stats()
	assert.Equal(t, uint64(2), stats.Matches)
	assert.Equal(t, uint64(1), stats.Mismatches)

	// the frame after the failing one was never fetched
	assert.Equal(t, 3, h.source.pos)

	report := h.report.String()
	assert.Contains(t, report, "packet #3")
	assert.Contains(t, report, "packets are different")
}

func TestSnifferStopBeforeFirstFetch(t *testing.T) {
	h := newTestHarness(t, &fakeCodec{}, makeTestFrames(t, 3))

	h.sniffer.Stop()
	require.NoError(t, h.sniffer.Run())
	assert.Zero(t, h.sniffer.Count())
}

func TestSnifferStopFinishesInFlightFrame(t *testing.T) {
	h := newTestHarness(t, &fakeCodec{}, makeTestFrames(t, 3))
	h.source.onRead = func(served int) {
		if served == 1 {
			h.sniffer.Stop()
		}
	}

	require.NoError(t, h.sniffer.Run())

	// the first frame is fully resolved, the second is never fetched
	assert.Equal(t, uint64(1), h.sniffer.Count())
	assert.Equal(t, uint64(1), h.verifier.Stats().Matches)
	assert.Equal(t, 1, h.source.pos)
}
