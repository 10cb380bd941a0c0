// Package gpi reads and writes Garmin Points-of-Interest (GPI) container
// files: a flat stream of type-tagged records, each carrying primary data
// and an optional auxiliary region of child records, terminated by an End
// sentinel. Decoding builds a forest of typed records; encoding writes the
// forest back with recomputed length fields, preserving every modeled byte.
package gpi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"

	"github.com/GravisZro/gpi-kit/pkg/gpi/parser"
	"github.com/GravisZro/gpi-kit/pkg/gpi/record"
)

// Options represents the options for decoding a GPI file.
type Options struct {
	logger logr.Logger
}

// Option represents a function that modifies the Options.
type Option func(*Options)

// WithLogger sets the logger used while decoding. The default discards
// everything.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// File is a fully decoded GPI file: its top-level records in stream order,
// End sentinel included when the file carried one.
type File struct {
	Records []record.Record

	sawEnd   bool
	warnings []error
}

// Open reads and decodes an existing GPI file.
func Open(location string, opts ...Option) (*File, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file, err := Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return file, nil
}

// Decode reads a GPI record stream until its End sentinel or EOF.
func Decode(r io.Reader, opts ...Option) (*File, error) {
	options := Options{
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	rs := parser.NewRecords(r, options.logger)
	file := &File{}
	for rs.Next() {
		file.Records = append(file.Records, rs.Record)
	}
	if err := rs.Err(); err != nil {
		return nil, err
	}
	file.sawEnd = rs.SawEnd()
	file.warnings = rs.Warnings()
	return file, nil
}

// Encode writes the file's records to the sink with all length fields
// recomputed. No End sentinel is synthesized; a file decoded from a
// well-formed stream already carries one.
func (f *File) Encode(w io.Writer) error {
	return parser.WriteAll(w, f.Records)
}

// Save encodes the file to a new file at the given location.
func (f *File) Save(location string) error {
	out, err := os.Create(location)
	if err != nil {
		return err
	}
	if err := f.Encode(out); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", location, err)
	}
	return out.Close()
}

// Bytes encodes the file into memory.
func (f *File) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SawEnd reports whether the decoded stream closed with the End sentinel.
func (f *File) SawEnd() bool {
	return f.sawEnd
}

// Warnings returns the non-fatal problems encountered while decoding:
// records skipped because their declared lengths did not match their bodies.
func (f *File) Warnings() []error {
	return f.warnings
}

// Walk visits every record in the forest depth-first, parents before
// children, with the nesting depth (0 for top-level records). Areas packed
// inside a POI group's primary data are visited as children of the group.
func (f *File) Walk(visit func(rec record.Record, depth int)) {
	for _, rec := range f.Records {
		walkRecord(rec, 0, visit)
	}
}

func walkRecord(rec record.Record, depth int, visit func(record.Record, int)) {
	visit(rec, depth)
	if group, ok := rec.(*record.POIGroup); ok {
		for _, area := range group.Areas {
			walkRecord(area, depth+1, visit)
		}
	}
	for _, child := range rec.Children() {
		walkRecord(child, depth+1, visit)
	}
}

// Waypoints returns every waypoint in the file, at any nesting depth.
func (f *File) Waypoints() []*record.Waypoint {
	var waypoints []*record.Waypoint
	f.Walk(func(rec record.Record, depth int) {
		if wp, ok := rec.(*record.Waypoint); ok {
			waypoints = append(waypoints, wp)
		}
	})
	return waypoints
}
