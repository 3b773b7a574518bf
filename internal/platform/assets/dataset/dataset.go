// Package dataset bundles the default observer catalog shipped with the
// application. It is loaded automatically when no replacement CSV is
// supplied.
package dataset

import (
	"bytes"
	_ "embed"
	"io"
)

// DefaultSource labels the bundled catalog in load audits.
const DefaultSource = "bundled:observers.csv"

//go:embed observers.csv
var observersCSV []byte

// Reader returns the bundled catalog CSV.
func Reader() io.Reader {
	return bytes.NewReader(observersCSV)
}
