package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/backmassage/scanmaster/internal/validate"
)

// WriteCSV renders the flagged files as the legacy two-column table:
// header "File Path,Error", one row per flagged outcome.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"File Path", "Error"}); err != nil {
		return err
	}
	for _, out := range rep.Flagged() {
		if err := cw.Write([]string{out.Path, rowDetail(out)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the CSV report to path, creating parent directories as
// needed. Matching the legacy scanners, the file is only created when the
// section has flagged files.
func WriteFile(path string, rep *Report) error {
	if len(rep.Flagged()) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %q: %w", path, err)
	}
	if err := WriteCSV(f, rep); err != nil {
		f.Close()
		return fmt.Errorf("write report %q: %w", path, err)
	}
	return f.Close()
}

// rowDetail renders the error column: the failing stage, then the captured
// detail when present.
func rowDetail(out validate.Outcome) string {
	if out.Detail == "" {
		return out.Stage
	}
	return out.Stage + ": " + out.Detail
}
