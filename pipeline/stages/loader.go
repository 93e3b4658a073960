package stages

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/errors"
)

// CSVLoader materializes the record set from the raw CSV export. Header
// names become column names; empty cells become the missing value, not an
// empty string, so later coercions can tell the two apart. The pandas
// index residue columns of the export are dropped on load.
type CSVLoader struct {
	Path string
}

// NewCSVLoader creates a loading stage for the given file.
func NewCSVLoader(path string) *CSVLoader { return &CSVLoader{Path: path} }

// Name implements pipeline.Stage.
func (l *CSVLoader) Name() string { return "load" }

// Process implements pipeline.Stage.
func (l *CSVLoader) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	file, err := os.Open(l.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open input %s", l.Path)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read csv %s", l.Path)
	}
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyFrame, "input has no header row")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	f := frame.New(header...)
	for _, rec := range records[1:] {
		row := make([]frame.Value, len(header))
		for j := range header {
			if j >= len(rec) || rec[j] == "" {
				row[j] = frame.NA()
			} else {
				row[j] = frame.Str(rec[j])
			}
		}
		if err := f.AppendRow(row...); err != nil {
			return nil, err
		}
	}

	f.Drop(colIndexResidue, colIndexResidu2)

	ctx.Frame = f
	return ctx, nil
}
