// Package parser drives the top-level record stream of a GPI file: a
// sequence of records terminated by an End sentinel, optionally followed by
// a trailing index region. Iteration stops at the End sentinel, so that
// region is neither read nor retained.
package parser

import (
	"errors"
	"io"

	"github.com/go-logr/logr"

	"github.com/GravisZro/gpi-kit/pkg/gpi/record"
	"github.com/GravisZro/gpi-kit/pkg/logging"
)

// Records is an iterator over the top-level records of one GPI stream. It is
// lazy, finite and not restartable: each Next consumes bytes from the
// underlying stream.
//
// Typical usage is
//
//	rs := parser.NewRecords(r, logger)
//	for rs.Next() {
//	    switch rec := rs.Record.(type) {
//	    ...
//	    }
//	}
//	if err := rs.Err(); err != nil { ... }
type Records struct {
	r   *record.Reader
	log logr.Logger
	err error

	// Record is the current record. Determine which kind it is with a type
	// switch on the concrete record types.
	Record record.Record

	done       bool
	sawEnd     bool
	warnings   []error
}

// NewRecords wraps a byte stream for iteration. The logger may be
// logr.Discard().
func NewRecords(r io.Reader, log logr.Logger) *Records {
	return &Records{r: record.NewReader(r), log: log}
}

// Next fetches the next record into rs.Record. It returns true on success
// and false at the end of the stream or on error. The End sentinel is
// surfaced as the final record before iteration stops.
func (rs *Records) Next() bool {
	if rs.done || rs.err != nil {
		return false
	}

	for {
		rec, err := record.Decode(rs.r, rs.log)
		if err == io.EOF {
			// EOF at a record boundary is a clean end, but a well-formed
			// file closes with the End sentinel.
			rs.done = true
			if !rs.sawEnd {
				rs.log.V(logging.DEBUG).Info("stream ended without End record",
					"offset", rs.r.Pos())
			}
			return false
		}

		var mismatch *record.LengthMismatchError
		if errors.As(err, &mismatch) {
			// The declared region has been consumed; warn and move on to
			// the next top-level record.
			rs.log.Error(mismatch, "skipping malformed record")
			rs.warnings = append(rs.warnings, mismatch)
			continue
		}
		if err != nil {
			rs.err = err
			return false
		}

		rs.Record = rec
		if rec.Kind() == record.KindEnd {
			rs.sawEnd = true
			rs.done = true
		}
		return true
	}
}

// Err returns the first fatal error encountered by the iterator.
func (rs *Records) Err() error {
	return rs.err
}

// Offset returns the number of bytes consumed from the stream so far.
func (rs *Records) Offset() int64 {
	return rs.r.Pos()
}

// SawEnd reports whether the stream closed with the End sentinel. A false
// value after iteration means the file ended at a record boundary without
// one, which the parser tolerates.
func (rs *Records) SawEnd() bool {
	return rs.sawEnd
}

// Warnings returns the non-fatal decode problems encountered so far, one per
// record that was skipped by declared length.
func (rs *Records) Warnings() []error {
	return rs.warnings
}

// ReadAll decodes every remaining record, End sentinel included.
func ReadAll(r io.Reader, log logr.Logger) ([]record.Record, error) {
	rs := NewRecords(r, log)
	var records []record.Record
	for rs.Next() {
		records = append(records, rs.Record)
	}
	return records, rs.Err()
}

// WriteAll encodes records to the sink in order. The caller terminates the
// stream by including an End record; none is synthesized.
func WriteAll(w io.Writer, records []record.Record) error {
	for _, rec := range records {
		buf, err := record.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
