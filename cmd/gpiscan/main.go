package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bgrewell/usage"
	"github.com/theckman/yacspin"
	"golang.org/x/term"

	gpi "github.com/GravisZro/gpi-kit"
	"github.com/GravisZro/gpi-kit/pkg/gpi/record"
	"github.com/GravisZro/gpi-kit/pkg/logging"
	"github.com/GravisZro/gpi-kit/pkg/version"
)

func main() {

	u := usage.NewUsage(
		usage.WithApplicationVersion(version.Version()),
		usage.WithApplicationBranch(version.Branch()),
		usage.WithApplicationBuildDate(version.Date()),
		usage.WithApplicationCommitHash(version.Revision()),
		usage.WithApplicationName("gpiscan"),
		usage.WithApplicationDescription("gpiscan is a command-line tool that decodes every Garmin GPI file in a directory, reporting the records each file carries and any malformed regions encountered along the way."),
	)

	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	debug := u.AddBooleanOption("v", "verbose", false, "Enable verbose (debug) logging", "", nil)
	trace := u.AddBooleanOption("vv", "trace", false, "Enable trace logging", "", nil)
	dir := u.AddArgument(1, "directory", "Directory containing GPI files to decode", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if dir == nil || *dir == "" {
		u.PrintError(fmt.Errorf("a <directory> of gpi files must be provided"))
		os.Exit(1)
	}

	info, err := os.Stat(*dir)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	if !info.IsDir() {
		u.PrintError(fmt.Errorf("%s is not a directory", *dir))
		os.Exit(1)
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	level := logging.INFO
	if *debug {
		level = logging.DEBUG
	}
	if *trace {
		level = logging.TRACE
	}
	logger := logging.NewSimpleLogger(os.Stderr, level, isTTY)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read directory: %v\n", err)
		os.Exit(1)
	}

	var spinner *yacspin.Spinner
	if isTTY && !*debug && !*trace {
		spinner, _ = yacspin.New(yacspin.Config{
			Frequency:       100 * time.Millisecond,
			CharSet:         yacspin.CharSets[14],
			Suffix:          " scanning",
			SuffixAutoColon: true,
			StopCharacter:   "✓",
			StopColors:      []string{"fgGreen"},
		})
		if spinner != nil {
			_ = spinner.Start()
		}
	}

	scanned, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		if spinner != nil {
			spinner.Message(entry.Name())
		}

		file, err := gpi.Open(path, gpi.WithLogger(logger))
		if err != nil {
			failed++
			logger.Error(err, "decode failed", "file", path)
			continue
		}
		scanned++

		records := 0
		file.Walk(func(_ record.Record, _ int) {
			records++
		})
		logger.Info("decoded", "file", entry.Name(),
			"records", records, "waypoints", len(file.Waypoints()),
			"warnings", len(file.Warnings()), "end", file.SawEnd())
	}

	if spinner != nil {
		_ = spinner.Stop()
	}

	fmt.Printf("Scanned %d file(s), %d failed to decode.\n", scanned, failed)
}
