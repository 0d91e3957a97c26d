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

package rohc

import (
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket/layers"
	"github.com/sirupsen/logrus"

	"github.com/cedricde/rohc/logging"
	"github.com/cedricde/rohc/types"
)

const (
	// DeviceMTU is the snap length used for live captures.
	DeviceMTU = 1518

	etherHdrLen       = 14
	linuxCookedHdrLen = 16
	etherFrameMinLen  = 60
	ipv6HdrLen        = 40
)

// LinkHeaderLength maps the capture medium to the length of the link-layer
// header preceding the IP packet. Unsupported media are a startup error.
func LinkHeaderLength(linkType layers.LinkType) (int, error) {
	switch linkType {
	case layers.LinkTypeEthernet:
		return etherHdrLen, nil
	case layers.LinkTypeLinuxSLL:
		return linuxCookedHdrLen, nil
	case layers.LinkTypeRaw:
		return 0, nil
	default:
		return 0, fmt.Errorf("link layer type %s not supported (supported = %s, %s, %s)",
			linkType, layers.LinkTypeEthernet, layers.LinkTypeLinuxSLL, layers.LinkTypeRaw)
	}
}

// Stats are the running counters printed when a verification fails.
type Stats struct {
	Matches               uint64
	CompressionFailures   uint64
	DecompressionFailures uint64
	Mismatches            uint64
	Malformed             uint64
	InternalErrors        uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("stats OK, ERR(COMP), ERR(DECOMP), ERR(REF), ERR(BAD), ERR(INTERNAL)\t=\t%d\t%d\t%d\t%d\t%d\t%d",
		s.Matches, s.CompressionFailures, s.DecompressionFailures,
		s.Mismatches, s.Malformed, s.InternalErrors)
}

// Verifier runs one captured frame at a time through the codec's
// compress/decompress round trip and checks that the result is byte
// identical to the original packet.
type Verifier struct {
	codec   types.Codec
	dumps   *logging.DumpManager
	linkLen int
	stats   Stats
	log     *logrus.Logger
}

// NewVerifier creates a verifier for a capture medium with the given link
// framing.
func NewVerifier(codec types.Codec, dumps *logging.DumpManager, linkType layers.LinkType, log *logrus.Logger) (*Verifier, error) {
	linkLen, err := LinkHeaderLength(linkType)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		codec:   codec,
		dumps:   dumps,
		linkLen: linkLen,
		log:     log,
	}, nil
}

// Stats returns the counters accumulated so far, the current frame included.
func (v *Verifier) Stats() Stats {
	return v.stats
}

// VerifyFrame resolves the verification outcome for one captured frame and
// updates the running counters.
func (v *Verifier) VerifyFrame(frame types.Frame) types.Result {
	result := v.verify(frame)

	switch result.Outcome {
	case types.OutcomeMatch:
		v.stats.Matches++
	case types.OutcomeMismatch:
		v.stats.Mismatches++
	case types.OutcomeCompressionFailure:
		v.stats.CompressionFailures++
	case types.OutcomeDecompressionFailure:
		v.stats.DecompressionFailures++
	case types.OutcomeMalformedInput:
		v.stats.Malformed++
	default:
		v.stats.InternalErrors++
	}

	return result
}

func (v *Verifier) verify(frame types.Frame) types.Result {
	ci := frame.CaptureInfo

	if ci.Length <= v.linkLen || ci.CaptureLength != ci.Length {
		return types.Result{
			Outcome: types.OutcomeMalformedInput,
			Err:     fmt.Errorf("bad captured frame (len = %d, caplen = %d)", ci.Length, ci.CaptureLength),
		}
	}

	ipPacket := frame.Data[v.linkLen:]

	// An Ethernet frame shorter than the physical minimum is padded by the
	// sender; the padding is not part of the IP packet and must not reach
	// the compressor, or the comparison would flag it.
	if v.linkLen == etherHdrLen && ci.Length == etherFrameMinLen {
		if totalLen, ok := ipTotalLength(ipPacket); ok && totalLen < len(ipPacket) {
			v.log.Debugf("the Ethernet frame has %d bytes of padding after the %d byte IP packet",
				len(ipPacket)-totalLen, totalLen)
			ipPacket = ipPacket[:totalLen]
		}
	}

	rohcPacket, err := v.codec.Compress(ipPacket)
	if err != nil {
		v.log.Errorf("compression failed: %v", err)
		if dumpErr := v.dumps.DumpFallback(frame); dumpErr != nil {
			v.log.Errorf("failed to dump the failing packet: %v", dumpErr)
		}
		return types.Result{
			Outcome:   types.OutcomeCompressionFailure,
			Reference: ipPacket,
			Err:       err,
		}
	}

	info, err := v.codec.LastPacketInfo()
	if err != nil {
		return types.Result{
			Outcome: types.OutcomeInfoUnavailable,
			Err:     fmt.Errorf("failed to get compression info: %w", err),
		}
	}

	if err := v.dumps.Route(info.ContextID, info.ContextInit, frame); err != nil {
		return types.Result{
			Outcome: types.OutcomeInfoUnavailable,
			CID:     info.ContextID,
			Err:     err,
		}
	}

	decompressed, err := v.codec.Decompress(rohcPacket)
	if err != nil {
		v.log.Errorf("decompression failed: %v", err)
		return types.Result{
			Outcome:   types.OutcomeDecompressionFailure,
			CID:       info.ContextID,
			Reference: ipPacket,
			Err:       err,
		}
	}

	if diff := DiffPackets(ipPacket, decompressed); diff != "" {
		return types.Result{
			Outcome:   types.OutcomeMismatch,
			CID:       info.ContextID,
			Reference: ipPacket,
			Actual:    decompressed,
		}
	}

	return types.Result{Outcome: types.OutcomeMatch, CID: info.ContextID}
}

// ipTotalLength recovers the logical length of an IP packet from its own
// header: the total-length field for version 4, the fixed header size plus
// the payload-length field for version 6.
func ipTotalLength(packet []byte) (int, bool) {
	if len(packet) == 0 {
		return 0, false
	}
	switch packet[0] >> 4 {
	case 4:
		if len(packet) < 4 {
			return 0, false
		}
		return int(binary.BigEndian.Uint16(packet[2:4])), true
	case 6:
		if len(packet) < 6 {
			return 0, false
		}
		return ipv6HdrLen + int(binary.BigEndian.Uint16(packet[4:6])), true
	default:
		return 0, false
	}
}
