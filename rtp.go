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
)

const (
	// sipPort is the reserved SIP signalling port; SIP over UDP is never RTP.
	sipPort = 5060
	// rtpMaxUDPLength rejects datagrams too large for the audio codecs of
	// interest.
	rtpMaxUDPLength = 200
	// rtpMinPayloadLength is the size of the fixed RTP header.
	rtpMinPayloadLength = 12
)

// IsRTP decides whether a UDP flow looks like an RTP stream, so that the
// compressor can apply the RTP profile to it. It is a heuristic: false
// positives and negatives on unusual traffic are an accepted tradeoff.
//
// The payload type must be GSM (0x03), ITU-T G.723 (0x04), ITU-T G.729
// (0x12) or telephony-event (0x65).
func IsRTP(ip, udp, payload []byte) bool {
	if len(udp) < 6 {
		return false
	}
	srcPort := binary.BigEndian.Uint16(udp[0:2])
	dstPort := binary.BigEndian.Uint16(udp[2:4])
	udpLen := binary.BigEndian.Uint16(udp[4:6])

	// SIP signalling is not RTP
	if srcPort == sipPort && dstPort == sipPort {
		return false
	}

	// RTP destination ports are even; the matching RTCP port is odd
	if dstPort%2 != 0 {
		return false
	}

	if udpLen > rtpMaxUDPLength {
		return false
	}

	if len(payload) < rtpMinPayloadLength {
		return false
	}

	// RTP version bits shall be 2
	if (payload[0]>>6)&0x3 != 0x2 {
		return false
	}

	switch payload[1] & 0x7f {
	case 0x03, 0x04, 0x12, 0x65:
		return true
	}
	return false
}
