package persist

import (
	"encoding/csv"
	"os"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pkg/errors"
)

// WriteFrameCSV writes a record set as UTF-8 CSV with a header row.
// Missing cells are written as empty strings.
func WriteFrameCSV(path string, f *frame.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	cols := f.Columns()
	if err := w.Write(cols); err != nil {
		return errors.Wrapf(err, "write header of %s", path)
	}
	row := make([]string, len(cols))
	for i := 0; i < f.NumRows(); i++ {
		for j, c := range cols {
			row[j] = f.At(i, c).String()
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "write row %d of %s", i, path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "flush %s", path)
	}
	return errors.WithStack(out.Close())
}
