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
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/cedricde/rohc/logging"
	"github.com/cedricde/rohc/types"
)

// FailureReporter emits the post-mortem report for the first non-matching
// frame: the running statistics, the byte diff for mismatches, and the
// codec's full retained trace history. It then terminates the run; the whole
// point of the tool is to stop at the first sign of divergence so that the
// dump files still describe the failing state.
type FailureReporter struct {
	traces *logging.TraceLog
	out    io.Writer
	log    *logrus.Logger
}

// NewFailureReporter creates a reporter writing to stderr.
func NewFailureReporter(traces *logging.TraceLog, log *logrus.Logger) *FailureReporter {
	return &FailureReporter{
		traces: traces,
		out:    os.Stderr,
		log:    log,
	}
}

// Fail reports the failing frame and aborts the run. It never returns.
func (f *FailureReporter) Fail(packetNum uint64, stats Stats, result types.Result) {
	banner := color.New(color.FgRed, color.Bold)
	banner.Fprintf(f.out, "packet #%d, CID %d: %s\n", packetNum, result.CID, result.Outcome)
	if result.Err != nil {
		fmt.Fprintf(f.out, "%v\n", result.Err)
	}
	fmt.Fprintf(f.out, "packet #%d, CID %d: %s\n", packetNum, result.CID, stats)

	if result.Outcome == types.OutcomeMismatch {
		fmt.Fprint(f.out, DiffPackets(result.Reference, result.Actual))
	}

	lines := f.traces.Drain()
	if len(lines) == 0 {
		fmt.Fprintln(f.out, "no trace to display")
	} else {
		fmt.Fprintf(f.out, "print the last %d traces...\n", len(lines))
		for _, line := range lines {
			fmt.Fprintln(f.out, line)
		}
	}

	f.log.Panicf("verification of packet #%d failed: %s", packetNum, result.Outcome)
}
