package testing

import (
	gpi "github.com/GravisZro/gpi-kit"
	"github.com/GravisZro/gpi-kit/pkg/gpi/record"
)

// GetRecordCounts walks the decoded forest and tallies records by kind,
// nested children and group-packed areas included.
func GetRecordCounts(file *gpi.File) map[record.Kind]int {
	counts := make(map[record.Kind]int)
	file.Walk(func(rec record.Record, depth int) {
		counts[rec.Kind()]++
	})
	return counts
}

// GetTotalRecordCount returns the number of records in the forest.
func GetTotalRecordCount(file *gpi.File) int {
	total := 0
	file.Walk(func(rec record.Record, depth int) {
		total++
	})
	return total
}
