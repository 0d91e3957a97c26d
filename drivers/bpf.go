//go:build darwin || dragonfly || freebsd || netbsd || openbsd
// +build darwin dragonfly freebsd netbsd openbsd

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
	"github.com/google/gopacket/bsdbpf"
	"github.com/google/gopacket/layers"

	"github.com/cedricde/rohc/types"
)

func init() {
	SnifferRegister("BSD_BPF", NewBPFHandle)
}

type BPFHandle struct {
	bpfSniffer *bsdbpf.BPFSniffer
}

func NewBPFHandle(options *types.SnifferDriverOptions) (types.PacketDataSourceCloser, error) {
	sniffer, err := bsdbpf.NewBPFSniffer(options.Device, nil)
	if err != nil {
		return nil, err
	}
	return &BPFHandle{
		bpfSniffer: sniffer,
	}, nil
}

func (b *BPFHandle) ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error) {
	return b.bpfSniffer.ReadPacketData()
}

// LinkType is always Ethernet for the BPF devices this tool targets.
func (b *BPFHandle) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

func (b *BPFHandle) Close() error {
	return b.bpfSniffer.Close()
}
