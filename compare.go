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
	"bytes"
	"fmt"
	"strings"
)

// maxCompareBytes bounds the diff window to avoid huge output.
const maxCompareBytes = 180

// bytesPerDiffLine is how many byte pairs are rendered per diff line.
const bytesPerDiffLine = 4

// DiffPackets renders an aligned byte-level difference view between a
// reference packet and a new packet. It returns the empty string when the
// two are identical in length and content. At most the first 180 bytes of
// the shorter packet are compared; equal positions are rendered as [0xNN],
// differing positions as #0xNN#.
func DiffPackets(ref, got []byte) string {
	if len(ref) == len(got) && bytes.Equal(ref, got) {
		return ""
	}

	minSize := len(ref)
	if len(got) < minSize {
		minSize = len(got)
	}
	if minSize > maxCompareBytes {
		minSize = maxCompareBytes
	}

	var b strings.Builder
	b.WriteString("------------------------------ Compare ------------------------------\n")
	b.WriteString("--------- reference ----------         ----------- new --------------\n")
	if len(ref) != len(got) {
		fmt.Fprintf(&b, "packets have different sizes (%d != %d), compare only the %d first bytes\n",
			len(ref), len(got), minSize)
	}

	for base := 0; base < minSize; base += bytesPerDiffLine {
		end := base + bytesPerDiffLine
		if end > minSize {
			end = minSize
		}

		for i := base; i < base+bytesPerDiffLine; i++ {
			if i < end {
				fmt.Fprintf(&b, "%s  ", diffCell(ref[i], ref[i] != got[i]))
			} else {
				b.WriteString("        ")
			}
		}
		b.WriteString("      ")
		for i := base; i < end; i++ {
			fmt.Fprintf(&b, "%s  ", diffCell(got[i], ref[i] != got[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString("----------------------- packets are different -----------------------\n")
	return b.String()
}

func diffCell(value byte, differs bool) string {
	if differs {
		return fmt.Sprintf("#0x%02x#", value)
	}
	return fmt.Sprintf("[0x%02x]", value)
}
