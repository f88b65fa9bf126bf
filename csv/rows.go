// Package csv reads and rewrites the URL list that feeds a harvest.
package csv

import (
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Row is one record of the URL list. The URL is the first column.
type Row []string

// Filter returns the rows in which no cell contains keyword.
// The match is a case-sensitive substring test. An empty keyword
// removes nothing.
func Filter(rows []Row, keyword string) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if keyword != "" && containsKeyword(row, keyword) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func containsKeyword(row Row, keyword string) bool {
	for _, cell := range row {
		if strings.Contains(cell, keyword) {
			return true
		}
	}
	return false
}

// Dedupe removes rows that exactly repeat an earlier row, keeping the
// first occurrence and the original order.
func Dedupe(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	seen := make(map[uint64][]int)
	for _, row := range rows {
		key := rowHash(row)
		if slices.ContainsFunc(seen[key], func(i int) bool { return slices.Equal(out[i], row) }) {
			continue
		}
		seen[key] = append(seen[key], len(out))
		out = append(out, row)
	}
	return out
}

// rowHash hashes cells with a unit separator so ["ab","c"] and ["a","bc"]
// hash differently.
func rowHash(row Row) uint64 {
	d := xxhash.New()
	for _, cell := range row {
		_, _ = d.WriteString(cell)
		_, _ = d.Write([]byte{0x1f})
	}
	return d.Sum64()
}
