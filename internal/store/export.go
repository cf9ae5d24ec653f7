package store

import (
	"encoding/json"
	"io"
	"os"
)

// ExportJSON writes the full analysis result to path, indented.
func ExportJSON(path string, res *Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportJSON(file, res)
}

// ExportJSONStdout writes the full analysis result to standard output.
func ExportJSONStdout(res *Result) error {
	return exportJSON(os.Stdout, res)
}

func exportJSON(w io.Writer, res *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(res)
}
