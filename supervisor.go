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
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Supervisor wires asynchronous shutdown signals to the sniffer's stop flag
// and runs the verification loop to completion.
type Supervisor struct {
	sniffer       *Sniffer
	forceQuitChan chan os.Signal
	log           *logrus.Logger
}

// NewSupervisor creates a supervisor for the given sniffer.
func NewSupervisor(sniffer *Sniffer, log *logrus.Logger) *Supervisor {
	return &Supervisor{
		sniffer:       sniffer,
		forceQuitChan: make(chan os.Signal, 1),
		log:           log,
	}
}

// Run installs the signal handlers and runs the verification loop. SIGINT
// and SIGTERM request a clean stop: the in-flight frame completes, dump
// handles are closed, and Run returns nil.
func (s *Supervisor) Run() error {
	signal.Notify(s.forceQuitChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.forceQuitChan)

	go func() {
		sig := <-s.forceQuitChan
		s.log.Infof("signal %v caught, stopping after the in-flight frame", sig)
		s.sniffer.Stop()
	}()

	return s.sniffer.Run()
}
