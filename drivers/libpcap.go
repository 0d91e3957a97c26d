//go:build (linux || freebsd || darwin) && cgo
// +build linux freebsd darwin
// +build cgo

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
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/cedricde/rohc/types"
)

func init() {
	SnifferRegister("libpcap", NewPcapSniffer)
}

type PcapHandle struct {
	handle *pcap.Handle
}

// NewPcapSniffer opens a live capture on the configured device, or an
// offline capture when a filename is given instead. Live captures use no
// read timeout: an idle wire blocks forever.
func NewPcapSniffer(options *types.SnifferDriverOptions) (types.PacketDataSourceCloser, error) {
	if options.Filename != "" {
		handle, err := pcap.OpenOffline(options.Filename)
		if err != nil {
			return nil, err
		}
		return &PcapHandle{handle: handle}, nil
	}
	handle, err := pcap.OpenLive(options.Device, options.Snaplen, false, pcap.BlockForever)
	if err != nil {
		return nil, err
	}
	return &PcapHandle{handle: handle}, nil
}

func (p *PcapHandle) ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error) {
	return p.handle.ReadPacketData()
}

func (p *PcapHandle) LinkType() layers.LinkType {
	return p.handle.LinkType()
}

func (p *PcapHandle) Close() error {
	p.handle.Close()
	return nil
}
