package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/W-A-James/G-SIM/internal/nbody"
	"github.com/W-A-James/G-SIM/internal/sim"
)

// ExportData is the JSON export shape: run metadata plus the full recorded
// trajectory, suitable for downstream plotting or analysis tools.
type ExportData struct {
	Meta   RunMetadata    `json:"meta"`
	Times  []float64      `json:"times"`
	Frames [][]nbody.Body `json:"frames"`
}

// ExportJSON writes a run as indented JSON to path, or to stdout when path
// is "-".
func ExportJSON(path string, meta RunMetadata, rec *sim.Recorder) error {
	var out io.Writer = os.Stdout
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{
		Meta:   meta,
		Times:  rec.Times,
		Frames: rec.Frames,
	})
}
