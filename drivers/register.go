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

package drivers

import (
	"github.com/cedricde/rohc/types"
)

// Drivers maps a capture backend name to its factory.
var Drivers = map[string]func(*types.SnifferDriverOptions) (types.PacketDataSourceCloser, error){}

// SnifferRegister makes a capture backend available by the provided name.
// If SnifferRegister is called twice with the same name or if the factory is
// nil, it panics.
func SnifferRegister(name string, factory func(*types.SnifferDriverOptions) (types.PacketDataSourceCloser, error)) {
	if factory == nil {
		panic("drivers: capture source factory is nil")
	}
	if _, dup := Drivers[name]; dup {
		panic("drivers: SnifferRegister called twice for capture source " + name)
	}
	Drivers[name] = factory
}
