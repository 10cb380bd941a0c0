package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bgrewell/usage"
	"github.com/fatih/color"
	"golang.org/x/term"

	gpi "github.com/GravisZro/gpi-kit"
	"github.com/GravisZro/gpi-kit/pkg/gpi/encoding"
	"github.com/GravisZro/gpi-kit/pkg/gpi/record"
	"github.com/GravisZro/gpi-kit/pkg/logging"
	"github.com/GravisZro/gpi-kit/pkg/version"
)

// DisplayFileInfo prints general information about the GPI file.
func DisplayFileInfo(f *gpi.File, verbose bool) {
	fmt.Println("=== GPI Information ===")

	for _, rec := range f.Records {
		switch hdr := rec.(type) {
		case *record.GarminHeader:
			fmt.Printf("Format Version: %s\n", hdr.Version)
			if len(hdr.Name) > 0 {
				fmt.Printf("Name: %s\n", hdr.Name)
			}
			if hdr.Created.After(encoding.GarminEpoch) {
				fmt.Printf("Created: %s\n", hdr.Created.UTC().Format("2006-01-02 15:04:05"))
			}
		case *record.POIHeader:
			fmt.Printf("Codepage: %s\n", hdr.Codepage)
			if hdr.AuxiliaryType == record.KindCopyright {
				fmt.Println("Copyright Record: YES")
			}
		}
	}

	counts := make(map[record.Kind]int)
	f.Walk(func(rec record.Record, depth int) {
		counts[rec.Kind()]++
	})

	kinds := make([]record.Kind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Println("\n--- Record Census ---")
	for _, kind := range kinds {
		fmt.Printf("%-20s %d\n", kind, counts[kind])
	}

	fmt.Printf("\nTotal Waypoints: %d\n", len(f.Waypoints()))
	if !f.SawEnd() {
		fmt.Println("WARNING: file did not close with an End record")
	}
	for _, warning := range f.Warnings() {
		fmt.Printf("WARNING: %s\n", warning)
	}

	if verbose {
		fmt.Println("\n--- Record Tree ---")
		useColor := term.IsTerminal(int(os.Stdout.Fd()))
		kindColor := color.New(color.FgCyan).SprintFunc()
		f.Walk(func(rec record.Record, depth int) {
			label := rec.Kind().String()
			if useColor {
				label = kindColor(label)
			}
			detail := recordDetail(rec)
			fmt.Printf("%s%s%s\n", strings.Repeat("  ", depth), label, detail)
		})
	}

	fmt.Println("=========================")
}

// recordDetail returns a short per-kind summary for the tree view.
func recordDetail(rec record.Record) string {
	switch r := rec.(type) {
	case *record.Waypoint:
		name := ""
		if entries := r.Shortname.Entries(); len(entries) > 0 {
			name = string(entries[0].Value)
		}
		return fmt.Sprintf(" %q (%.5f, %.5f)", name,
			r.Coordinates.Latitude, r.Coordinates.Longitude)
	case *record.Category:
		return fmt.Sprintf(" id=%d", r.CategoryID)
	case *record.Bitmap:
		return fmt.Sprintf(" id=%d %dx%d %dbpp", r.BitmapID, r.Width, r.Height, r.BitsPerPixel)
	case *record.AudioFile:
		return fmt.Sprintf(" id=%d %v", r.AudioID, r.Format)
	case *record.Opaque:
		return fmt.Sprintf(" (%d bytes, not interpreted)", len(r.Data)+len(r.Aux))
	}
	return ""
}

func main() {

	u := usage.NewUsage(
		usage.WithApplicationVersion(version.Version()),
		usage.WithApplicationBranch(version.Branch()),
		usage.WithApplicationBuildDate(version.Date()),
		usage.WithApplicationCommitHash(version.Revision()),
		usage.WithApplicationName("gpiview"),
		usage.WithApplicationDescription("gpiview is a command-line tool for inspecting Garmin GPI point-of-interest files. It prints the file headers, a census of the records the file carries, and optionally the full record tree."),
	)

	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Print the full record tree", "", nil)
	trace := u.AddBooleanOption("vv", "trace", false, "Enable trace logging while decoding", "", nil)
	path := u.AddArgument(1, "gpi-path", "Path to the GPI file to inspect", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if path == nil || *path == "" {
		u.PrintError(fmt.Errorf("location of the gpi file <gpi-path> must be provided"))
		os.Exit(1)
	}

	opts := []gpi.Option{}
	if *trace {
		opts = append(opts, gpi.WithLogger(
			logging.NewSimpleLogger(os.Stderr, logging.TRACE, term.IsTerminal(int(os.Stderr.Fd())))))
	}

	f, err := gpi.Open(*path, opts...)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	DisplayFileInfo(f, *verbose)
}
