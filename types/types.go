/*
 *    ROHC sniffer: verify the ROHC library against live network traffic
 *
 *    Copyright (C) 2025, 2026  Cedric Delmas
 *
 *    This program is free software: you can redistribute it and/or modify
 *    it under the terms of the GNU General Public License as published by
 *    the Free Software Foundation, either version 3 of the License, or
 *    (at your option) any later version.
 *
 *    This program is distributed in the hope that it will be useful,
 *    but WITHOUT ANY WARRANTY; without even the implied warranty of
 *    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *    GNU General Public License for more details.
 *
 *    You should have received a copy of the GNU General Public License
 *    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package types

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Outcome classifies the result of verifying one captured frame.
type Outcome int

const (
	// OutcomeMatch means the decompressed packet is byte-identical to the
	// original uncompressed packet.
	OutcomeMatch Outcome = iota
	// OutcomeMismatch means the round trip succeeded but produced
	// different bytes.
	OutcomeMismatch
	// OutcomeCompressionFailure means the compressor rejected the packet.
	OutcomeCompressionFailure
	// OutcomeDecompressionFailure means the decompressor rejected the
	// compressed packet.
	OutcomeDecompressionFailure
	// OutcomeMalformedInput means the captured frame was unusable before
	// any compression took place.
	OutcomeMalformedInput
	// OutcomeInfoUnavailable means the codec could not report which
	// context handled the packet.
	OutcomeInfoUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeCompressionFailure:
		return "compression failure"
	case OutcomeDecompressionFailure:
		return "decompression failure"
	case OutcomeMalformedInput:
		return "malformed input"
	case OutcomeInfoUnavailable:
		return "compression info unavailable"
	default:
		return "unknown outcome"
	}
}

// Result is the fully resolved verification outcome for one captured frame.
// Non-match outcomes carry whatever the failure report needs: both buffers
// for a mismatch, the underlying error otherwise.
type Result struct {
	Outcome   Outcome
	CID       uint32
	Reference []byte // uncompressed packet, physical-layer padding removed
	Actual    []byte // output of the decompressor
	Err       error
}

// Frame is one captured packet together with its capture metadata.
type Frame struct {
	Data        []byte
	CaptureInfo gopacket.CaptureInfo
}

// TraceLevel is the severity of a codec diagnostic line.
type TraceLevel int

const (
	TraceDebug TraceLevel = iota
	TraceInfo
	TraceWarning
	TraceError
)

func (l TraceLevel) String() string {
	switch l {
	case TraceDebug:
		return "DEBUG"
	case TraceInfo:
		return "INFO"
	case TraceWarning:
		return "WARNING"
	case TraceError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// TraceEntity identifies which half of the codec emitted a diagnostic line.
type TraceEntity int

const (
	EntityCompressor TraceEntity = iota
	EntityDecompressor
)

func (e TraceEntity) String() string {
	switch e {
	case EntityCompressor:
		return "comp"
	case EntityDecompressor:
		return "decomp"
	default:
		return "unknown"
	}
}

// TraceFunc receives one formatted diagnostic line from the codec.
type TraceFunc func(level TraceLevel, entity TraceEntity, profile int, msg string)

// RTPDetectFunc is consulted by the compressor to decide whether a UDP flow
// should be compressed with the RTP profile. ip and udp point at the raw
// headers, payload at the UDP payload.
type RTPDetectFunc func(ip, udp, payload []byte) bool

// RandomFunc supplies random numbers to the compressor. Verification runs
// inject a stub that always returns zero so that runs are reproducible.
type RandomFunc func() uint32

// PacketInfo describes how the codec handled the last compressed packet.
type PacketInfo struct {
	// ContextID is the compression context the packet was assigned to.
	ContextID uint32
	// ContextInit is true when that packet created or reinitialized the
	// context.
	ContextInit bool
}

// CodecOptions carries the configuration and the injected capabilities a
// codec engine is constructed with. Engines must never reach for global
// callbacks; everything they need is passed here.
type CodecOptions struct {
	LargeCID    bool
	MaxContexts int
	Trace       TraceFunc
	DetectRTP   RTPDetectFunc
	Random      RandomFunc
}

// Codec is the external compression engine under test. The sniffer never
// looks inside it; it only round-trips packets and asks which context was
// used.
type Codec interface {
	// Compress compresses one uncompressed IP packet.
	Compress(packet []byte) ([]byte, error)
	// Decompress decompresses one compressed packet.
	Decompress(packet []byte) ([]byte, error)
	// LastPacketInfo reports the context used for the last compressed
	// packet.
	LastPacketInfo() (PacketInfo, error)
	// Close releases the engine's compressor/decompressor pair.
	Close() error
}

// SnifferDriverOptions selects and configures a capture backend.
type SnifferDriverOptions struct {
	DAQ      string
	Device   string
	Filename string
	Snaplen  int32
}

// PacketDataSourceCloser is a source of raw packet data.
type PacketDataSourceCloser interface {
	// ReadPacketData returns the next packet available from this source.
	// It blocks until traffic arrives and returns io.EOF when the source
	// is exhausted.
	ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error)
	// LinkType reports the link-layer framing of the capture medium,
	// fixed for the lifetime of the source.
	LinkType() layers.LinkType
	// Close closes the capture source.
	Close() error
}
