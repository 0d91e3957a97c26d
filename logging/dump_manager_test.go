package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedricde/rohc/types"
)

func makeTestFrame(payload byte) types.Frame {
	data := []byte{payload, payload, payload, payload}
	return types.Frame{
		Data: data,
		CaptureInfo: gopacket.CaptureInfo{
			Timestamp:     time.Unix(1, 0),
			CaptureLength: len(data),
			Length:        len(data),
		},
	}
}

func readDumpedPackets(t *testing.T, path string) [][]byte {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader, err := pcapgo.NewReader(file)
	require.NoError(t, err)

	var packets [][]byte
	for {
		data, _, err := reader.ReadPacketData()
		if err == io.EOF {
			return packets
		}
		require.NoError(t, err)
		packets = append(packets, data)
	}
}

func TestRouteCreatesFileLazily(t *testing.T) {
	dir := t.TempDir()
	manager := NewDumpManager(dir, 4, layers.LinkTypeEthernet, newTestLogger(io.Discard))

	require.NoError(t, manager.Route(2, false, makeTestFrame(0xaa)))
	manager.CloseAll()

	packets := readDumpedPackets(t, filepath.Join(dir, "dump_stream_cid_2.pcap"))
	require.Len(t, packets, 1)
	assert.Equal(t, []byte{0xaa, 0xaa, 0xaa, 0xaa}, packets[0])

	// no other slot was touched
	_, err := os.Stat(filepath.Join(dir, "dump_stream_cid_0.pcap"))
	assert.True(t, os.IsNotExist(err))
}

func TestRouteWithoutInitAppends(t *testing.T) {
	dir := t.TempDir()
	manager := NewDumpManager(dir, 4, layers.LinkTypeEthernet, newTestLogger(io.Discard))

	require.NoError(t, manager.Route(3, true, makeTestFrame(1)))
	require.NoError(t, manager.Route(3, false, makeTestFrame(2)))
	require.NoError(t, manager.Route(3, false, makeTestFrame(3)))
	manager.CloseAll()

	packets := readDumpedPackets(t, filepath.Join(dir, "dump_stream_cid_3.pcap"))
	assert.Len(t, packets, 3)
}

func TestRouteContextInitReplacesFile(t *testing.T) {
	dir := t.TempDir()
	manager := NewDumpManager(dir, 4, layers.LinkTypeEthernet, newTestLogger(io.Discard))

	require.NoError(t, manager.Route(1, true, makeTestFrame(1)))
	require.NoError(t, manager.Route(1, false, makeTestFrame(2)))

	// the codec reinitialized CID 1 for an unrelated flow; earlier frames
	// must not leak into the new file
	require.NoError(t, manager.Route(1, true, makeTestFrame(9)))
	manager.CloseAll()

	packets := readDumpedPackets(t, filepath.Join(dir, "dump_stream_cid_1.pcap"))
	require.Len(t, packets, 1)
	assert.Equal(t, []byte{9, 9, 9, 9}, packets[0])
}

func TestRouteContextInitWithoutPriorFile(t *testing.T) {
	dir := t.TempDir()
	manager := NewDumpManager(dir, 4, layers.LinkTypeEthernet, newTestLogger(io.Discard))

	// a stale file from an earlier run must be removed, not appended to
	stale := filepath.Join(dir, "dump_stream_cid_0.pcap")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0644))

	require.NoError(t, manager.Route(0, true, makeTestFrame(7)))
	manager.CloseAll()

	packets := readDumpedPackets(t, stale)
	require.Len(t, packets, 1)
	assert.Equal(t, []byte{7, 7, 7, 7}, packets[0])
}

func TestRouteRejectsOutOfRangeCID(t *testing.T) {
	manager := NewDumpManager(t.TempDir(), 4, layers.LinkTypeEthernet, newTestLogger(io.Discard))
	assert.Error(t, manager.Route(4, false, makeTestFrame(0)))
}

func TestDumpFallbackKeepsMostRecentFrame(t *testing.T) {
	dir := t.TempDir()
	manager := NewDumpManager(dir, 4, layers.LinkTypeEthernet, newTestLogger(io.Discard))

	require.NoError(t, manager.DumpFallback(makeTestFrame(1)))
	require.NoError(t, manager.DumpFallback(makeTestFrame(2)))

	packets := readDumpedPackets(t, filepath.Join(dir, FallbackDumpName))
	require.Len(t, packets, 1)
	assert.Equal(t, []byte{2, 2, 2, 2}, packets[0])
}
