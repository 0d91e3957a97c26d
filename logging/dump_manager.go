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
	"os"
	"path/filepath"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/sirupsen/logrus"

	"github.com/cedricde/rohc/types"
)

// FallbackDumpName is the capture file receiving frames whose compression
// failed before any context was assigned.
const FallbackDumpName = "dump_stream_default.pcap"

// dumpSnaplen is the snaplen written into dump file headers.
const dumpSnaplen = 65536

type dumpSlot struct {
	file   *os.File
	writer *pcapgo.Writer
	path   string
}

// DumpManager maintains one capture dump file per compression context.
// Handles are opened lazily, and a context's file is deleted and recreated
// whenever the codec reports that the context was (re)initialized, so a dump
// file never mixes frames from two unrelated flows that reused a CID.
//
// All methods must be called from the verification thread; there is no
// locking.
type DumpManager struct {
	dir      string
	linkType layers.LinkType
	slots    []*dumpSlot
	log      *logrus.Logger
}

// NewDumpManager creates a manager with one slot per possible context ID.
func NewDumpManager(dir string, maxContexts int, linkType layers.LinkType, log *logrus.Logger) *DumpManager {
	return &DumpManager{
		dir:      dir,
		linkType: linkType,
		slots:    make([]*dumpSlot, maxContexts),
		log:      log,
	}
}

func (m *DumpManager) dumpPath(cid uint32) string {
	return filepath.Join(m.dir, fmt.Sprintf("dump_stream_cid_%d.pcap", cid))
}

// Route writes frame into the dump file for cid. When contextInit is set the
// current file for that CID is deleted and a fresh one is created first.
// Any filesystem error is returned to the caller and is fatal to the run.
func (m *DumpManager) Route(cid uint32, contextInit bool, frame types.Frame) error {
	if int(cid) >= len(m.slots) {
		return fmt.Errorf("context ID %d out of range, only %d contexts configured", cid, len(m.slots))
	}

	slot := m.slots[cid]
	if contextInit {
		if slot != nil {
			m.log.Infof("replace dump file '%s' for context with ID %d", slot.path, cid)
			if err := slot.file.Close(); err != nil {
				return fmt.Errorf("failed to close dump file '%s': %w", slot.path, err)
			}
		}
		if err := os.Remove(m.dumpPath(cid)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove dump file '%s': %w", m.dumpPath(cid), err)
		}
		m.slots[cid] = nil
		slot = nil
	}

	if slot == nil {
		opened, err := m.openSlot(cid)
		if err != nil {
			return err
		}
		m.slots[cid] = opened
		slot = opened
	}

	return slot.writer.WritePacket(frame.CaptureInfo, frame.Data)
}

func (m *DumpManager) openSlot(cid uint32) (*dumpSlot, error) {
	path := m.dumpPath(cid)
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open new dump file '%s' for context with ID %d: %w", path, cid, err)
	}
	writer := pcapgo.NewWriter(file)
	if err := writer.WriteFileHeader(dumpSnaplen, m.linkType); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header of dump file '%s': %w", path, err)
	}
	return &dumpSlot{file: file, writer: writer, path: path}, nil
}

// DumpFallback persists a frame whose compression failed to the fixed
// fallback capture file for offline inspection. The file is recreated on
// every call; only the most recent failing frame is kept.
func (m *DumpManager) DumpFallback(frame types.Frame) error {
	path := filepath.Join(m.dir, FallbackDumpName)
	m.log.Warnf("dump packet in file '%s'", path)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open new dump file '%s': %w", path, err)
	}
	defer file.Close()

	writer := pcapgo.NewWriter(file)
	if err := writer.WriteFileHeader(dumpSnaplen, m.linkType); err != nil {
		return fmt.Errorf("failed to write header of dump file '%s': %w", path, err)
	}
	return writer.WritePacket(frame.CaptureInfo, frame.Data)
}

// CloseAll closes every open dump handle. Called once at the end of a clean
// run.
func (m *DumpManager) CloseAll() {
	for cid, slot := range m.slots {
		if slot == nil {
			continue
		}
		m.log.Infof("close dump file for context with ID %d", cid)
		if err := slot.file.Close(); err != nil {
			m.log.Errorf("failed to close dump file '%s': %v", slot.path, err)
		}
		m.slots[cid] = nil
	}
}
