package crack

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/atomicfile"
)

// A Report is a self-describing record of a completed search, suitable for
// encoding as JSON.
type Report struct {
	Wordlist  string `json:"wordlist"`
	Algorithm string `json:"algorithm"`
	Target    string `json:"target"`
	Found     bool   `json:"found"`
	Candidate string `json:"candidate,omitempty"`
	Line      int    `json:"line,omitempty"`
	Tried     int64  `json:"tried"`
	Elapsed   string `json:"elapsed"`
}

// NewReport constructs a report for the search of path for target.
func NewReport(path string, e *Engine, target Target, res Result) Report {
	return Report{
		Wordlist:  path,
		Algorithm: e.Algorithm.Name,
		Target:    target.String(),
		Found:     res.Found,
		Candidate: res.Candidate,
		Line:      res.Line,
		Tried:     res.Tried,
		Elapsed:   res.Elapsed.String(),
	}
}

// WriteReport writes rep as JSON to path. The file is replaced atomically,
// so a reader never observes a partial report.
func WriteReport(path string, rep Report) error {
	err := atomicfile.Tx(path, 0600, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	})
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadReport reads a JSON report from path.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return rep, nil
}
