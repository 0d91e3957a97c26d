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

	"github.com/cedricde/rohc/types"
)

// Version of the sniffer tool.
const Version = "1.7.0"

// CodecFactory builds a codec engine with the injected capabilities carried
// by the options: the trace sink, the RTP detection predicate and the random
// source.
type CodecFactory func(*types.CodecOptions) (types.Codec, error)

var codecEngines = map[string]CodecFactory{}

// RegisterCodec makes a codec engine available by the provided name. A cgo
// binding to the ROHC library registers itself under "rohc"; tests register
// in-memory engines. If RegisterCodec is called twice with the same name or
// if the factory is nil, it panics.
func RegisterCodec(name string, factory CodecFactory) {
	if factory == nil {
		panic("rohc: codec factory is nil")
	}
	if _, dup := codecEngines[name]; dup {
		panic("rohc: RegisterCodec called twice for codec engine " + name)
	}
	codecEngines[name] = factory
}

// NewCodec constructs the codec engine registered under name.
func NewCodec(name string, options *types.CodecOptions) (types.Codec, error) {
	factory, ok := codecEngines[name]
	if !ok {
		return nil, fmt.Errorf("no codec engine registered under '%s'", name)
	}
	return factory(options)
}
