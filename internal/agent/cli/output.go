package cli

import (
	"encoding/json"
	"io"
)

// printJSON печатает v в читаемом JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
