package stages

import (
	"regexp"
	"strings"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/errors"
)

// NormalizationStage canonicalizes position titles and city names and
// converts the salary to rubles with a fixed rate table. The three raw
// position source columns are renamed into their derived counterparts and
// dropped here; the other raw text columns stay until the encoding stage.
type NormalizationStage struct{}

// NewNormalizationStage creates the normalization stage.
func NewNormalizationStage() *NormalizationStage { return &NormalizationStage{} }

// Name implements pipeline.Stage.
func (s *NormalizationStage) Name() string { return "normalize" }

var (
	reCommaSpacing = regexp.MustCompile(`\s*,\s*`)
	reSlashSpacing = regexp.MustCompile(`\s*/\s*`)
	reMoscowRegion = regexp.MustCompile(`московск(?:ая|ой)\s+обл`)
	reTrailingHint = regexp.MustCompile(`\s*\(.*\)$`)
	reManySpaces   = regexp.MustCompile(`\s+`)
)

// exchangeRates converts the parsed salary to rubles. An unknown or
// missing currency keeps rate 1.0 and is treated as already converted;
// this is a documented simplification, not live conversion.
var exchangeRates = map[string]float64{
	"usd": 76.55,
	"eur": 91.46,
	"руб": 1.0,
	"грн": 1.8,
	"azn": 45.03,
	"kzt": 0.15,
	"kgs": 0.88,
	"сум": 0.006,
}

// Process implements pipeline.Stage.
func (s *NormalizationStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.Frame == nil {
		return nil, errors.NewMissingColumnError(s.Name(), "record set")
	}
	f := ctx.Frame.Copy()
	n := f.NumRows()

	if f.Has(ColSalary) && f.Has(ColCurrency) {
		for i := 0; i < n; i++ {
			amount, ok := f.At(i, ColSalary).AsFloat()
			if !ok {
				continue
			}
			rate := 1.0
			if cur, isText := f.At(i, ColCurrency).Text(); isText {
				if r, known := exchangeRates[strings.ToLower(cur)]; known {
					rate = r
				}
			}
			f.Set(i, ColSalary, frame.Float(amount*rate))
		}
	}

	if f.Has(ColCityNorm) {
		f.MapColumn(ColCityNorm, func(v frame.Value) frame.Value {
			return frame.Str(normalizeCity(v.String()))
		})
	}

	if f.Has(colWantedRole) {
		if err := s.derivePosition(f, colWantedRole, ColPosition); err != nil {
			return nil, err
		}
	}
	if f.Has(colLastRole) {
		if err := s.derivePosition(f, colLastRole, ColLastPosition); err != nil {
			return nil, err
		}
	}
	if f.Has(colLastWorkSrc) {
		if err := f.AddColumn(ColLastWork, f.Column(colLastWorkSrc)); err != nil {
			return nil, err
		}
	}
	f.Drop(colWantedRole, colLastRole, colLastWorkSrc)

	ctx.Frame = f
	return ctx, nil
}

func (s *NormalizationStage) derivePosition(f *frame.Frame, src, dst string) error {
	n := f.NumRows()
	out := make([]frame.Value, n)
	for i := 0; i < n; i++ {
		out[i] = frame.Str(normalizePosition(f.At(i, src).String()))
	}
	return f.AddColumn(dst, out)
}

// normalizePosition lowercases the title and collapses irregular comma and
// slash spacing to one canonical convention.
func normalizePosition(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reCommaSpacing.ReplaceAllString(s, ", ")
	s = reSlashSpacing.ReplaceAllString(s, " / ")
	return s
}

// normalizeCity lowercases and trims the city, canonicalizes anything
// containing the capital name (even when decorated with metro or district
// detail) to the bare capital, maps the capital-region phrase to the
// canonical region name, then strips trailing parentheticals and collapses
// whitespace.
func normalizeCity(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case containsWord(s, "москва"):
		s = "москва"
	case reMoscowRegion.MatchString(s) || strings.Contains(s, "московская область"):
		s = "московская область"
	}

	s = reTrailingHint.ReplaceAllString(s, "")
	s = reManySpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
