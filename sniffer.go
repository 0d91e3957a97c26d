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
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cedricde/rohc/logging"
	"github.com/cedricde/rohc/types"
)

// Sniffer drives the verification loop: it pulls frames from the capture
// source one at a time and fully resolves each frame's outcome before
// fetching the next. The codec's contexts adapt to the exact sequence of
// packets seen, so there is no parallel dispatch and no reordering.
type Sniffer struct {
	source   types.PacketDataSourceCloser
	verifier *Verifier
	failure  *FailureReporter
	dumps    *logging.DumpManager
	log      *logrus.Logger
	progress io.Writer
	stop     atomic.Bool
	counter  uint64
}

// NewSniffer creates the verification loop. Progress is printed to stdout.
func NewSniffer(source types.PacketDataSourceCloser, verifier *Verifier, failure *FailureReporter, dumps *logging.DumpManager, log *logrus.Logger) *Sniffer {
	return &Sniffer{
		source:   source,
		verifier: verifier,
		failure:  failure,
		dumps:    dumps,
		log:      log,
		progress: os.Stdout,
	}
}

// Stop requests a clean shutdown. It is safe to call from another goroutine;
// the loop finishes the in-flight frame and checks the flag before the next
// blocking fetch.
func (s *Sniffer) Stop() {
	s.stop.Store(true)
}

// Count reports how many frames have been processed so far.
func (s *Sniffer) Count() uint64 {
	return s.counter
}

// Run pulls and verifies frames until the source is exhausted or Stop is
// called. A frame that fails verification aborts the whole run from inside
// the failure reporter; every open dump handle is closed on the way out.
func (s *Sniffer) Run() error {
	defer s.dumps.CloseAll()

	for !s.stop.Load() {
		data, ci, err := s.source.ReadPacketData()
		if err == io.EOF {
			s.log.Info("capture source exhausted")
			break
		}
		if err != nil {
			s.log.Debugf("error reading packet: %v", err)
			continue
		}

		s.counter++
		if s.counter > 1 {
			fmt.Fprint(s.progress, "\r")
		}
		fmt.Fprintf(s.progress, "packet #%d", s.counter)

		result := s.verifier.VerifyFrame(types.Frame{Data: data, CaptureInfo: ci})
		if result.Outcome != types.OutcomeMatch {
			fmt.Fprintln(s.progress)
			s.failure.Fail(s.counter, s.verifier.Stats(), result)
		}
	}

	fmt.Fprintln(s.progress)
	if s.stop.Load() {
		s.log.Info("program stopped by signal")
	}
	return nil
}
