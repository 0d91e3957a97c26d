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

package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cedricde/rohc/types"
)

const (
	// MaxRetainedTraces is the number of codec trace lines kept for the
	// post-mortem report.
	MaxRetainedTraces = 5000
	// MaxTraceLen is the bound a single retained trace line is truncated
	// to. Over-length lines are cut, never rejected.
	MaxTraceLen = 300
)

// TraceLog is the diagnostic sink injected into the codec engine. Every line
// the codec emits is tagged, bounded and retained in a circular history so
// that the whole recent trace can be replayed when a verification fails.
// Warnings and errors are echoed live; in verbose mode everything is.
type TraceLog struct {
	ring    *types.TraceRing
	log     *logrus.Logger
	verbose bool
}

// NewTraceLog creates a trace sink echoing through log.
func NewTraceLog(log *logrus.Logger, verbose bool) *TraceLog {
	return &TraceLog{
		ring:    types.NewTraceRing(MaxRetainedTraces),
		log:     log,
		verbose: verbose,
	}
}

// Record implements types.TraceFunc. It is invoked synchronously by the
// codec on the verification thread.
func (t *TraceLog) Record(level types.TraceLevel, entity types.TraceEntity, profile int, msg string) {
	line := fmt.Sprintf("[%s] [%s] [profile %d] %s", level, entity, profile, msg)
	if len(line) > MaxTraceLen {
		line = line[:MaxTraceLen]
	}

	if t.verbose || level >= types.TraceWarning {
		switch level {
		case types.TraceDebug:
			t.log.Debug(line)
		case types.TraceInfo:
			t.log.Info(line)
		case types.TraceWarning:
			t.log.Warn(line)
		default:
			t.log.Error(line)
		}
	}

	t.ring.Append(line)
}

// Drain returns the retained trace history, oldest line first.
func (t *TraceLog) Drain() []string {
	return t.ring.Drain()
}
