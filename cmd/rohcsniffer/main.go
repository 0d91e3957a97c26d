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

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cedricde/rohc"
	"github.com/cedricde/rohc/drivers"
	"github.com/cedricde/rohc/logging"
	"github.com/cedricde/rohc/types"
)

const (
	// smallCIDMaxContexts bounds --max-contexts for small CIDs.
	smallCIDMaxContexts = 128
	// largeCIDMaxContexts bounds --max-contexts for large CIDs.
	largeCIDMaxContexts = 16384

	defaultCodecEngine = "rohc"
)

var (
	verbose     bool
	maxContexts int
	daqName     string
	dumpDir     string
)

var rootCmd = &cobra.Command{
	Use:   "rohc_sniffer [OPTIONS] CID_TYPE DEVICE",
	Short: "Test the ROHC library with sniffed traffic",
	Long: `ROHC sniffer tool: test the ROHC library with sniffed traffic.

Every packet captured on DEVICE is compressed, then decompressed, and the
result is compared with the original packet. The program stops at the first
divergence and leaves one capture dump per compression context behind for
post-mortem analysis.

CID_TYPE is the type of context ID to use, 'smallcid' or 'largecid'.
DEVICE is the network device to sniff, or a recorded capture file to replay.`,
	Version:      rohc.Version,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&verbose, "verbose", false,
		"make the test more verbose")
	rootCmd.Flags().IntVar(&maxContexts, "max-contexts", smallCIDMaxContexts,
		"the maximum number of ROHC contexts to simultaneously use during the test")
	rootCmd.Flags().StringVar(&daqName, "daq", "libpcap",
		"data acquisition packet source")
	rootCmd.Flags().StringVar(&dumpDir, "dump-dir", ".",
		"directory receiving the per-context capture dumps")
	rootCmd.Flags().MarkHidden("daq")
	rootCmd.SetVersionTemplate("ROHC sniffer tool, based on library version {{.Version}}\n")
}

func run(cmd *cobra.Command, args []string) error {
	cidType, device := args[0], args[1]

	var largeCID bool
	switch cidType {
	case "smallcid":
		largeCID = false
		if maxContexts < 1 || maxContexts > smallCIDMaxContexts {
			return fmt.Errorf("the maximum number of ROHC contexts should be between 1 and %d", smallCIDMaxContexts)
		}
	case "largecid":
		largeCID = true
		if maxContexts < 1 || maxContexts > largeCIDMaxContexts {
			return fmt.Errorf("the maximum number of ROHC contexts should be between 1 and %d", largeCIDMaxContexts)
		}
	default:
		return fmt.Errorf("invalid CID type '%s', only 'smallcid' and 'largecid' expected", cidType)
	}

	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	options := &types.SnifferDriverOptions{
		DAQ:     daqName,
		Device:  device,
		Snaplen: rohc.DeviceMTU,
	}
	// replay a recorded capture when DEVICE names a file
	if info, err := os.Stat(device); err == nil && info.Mode().IsRegular() {
		options.Filename = device
	}

	factory, ok := drivers.Drivers[daqName]
	if !ok {
		return fmt.Errorf("%s capture source not supported on this system", daqName)
	}
	source, err := factory(options)
	if err != nil {
		return fmt.Errorf("failed to open capture source '%s': %w", device, err)
	}
	defer source.Close()

	linkType := source.LinkType()
	if _, err := rohc.LinkHeaderLength(linkType); err != nil {
		return err
	}

	traces := logging.NewTraceLog(log, verbose)
	codec, err := rohc.NewCodec(defaultCodecEngine, &types.CodecOptions{
		LargeCID:    largeCID,
		MaxContexts: maxContexts,
		Trace:       traces.Record,
		DetectRTP:   rohc.IsRTP,
		// a compressor fed fixed randomness keeps every run reproducible
		Random: func() uint32 { return 0 },
	})
	if err != nil {
		return fmt.Errorf("failed to create the ROHC codec: %w", err)
	}
	defer codec.Close()

	dumps := logging.NewDumpManager(dumpDir, maxContexts, linkType, log)
	verifier, err := rohc.NewVerifier(codec, dumps, linkType, log)
	if err != nil {
		return err
	}

	sniffer := rohc.NewSniffer(source, verifier, rohc.NewFailureReporter(traces, log), dumps, log)
	log.Infof("starting %s packet capture on %s", daqName, device)
	return rohc.NewSupervisor(sniffer, log).Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
