package output

import (
	"encoding/json"
	"io"

	"github.com/ocelotsec/ocelot/internal/scanner"
)

// JSONFormatter outputs the full scan result as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, result *scanner.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
