package stages

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/errors"
)

// BasicFeatureStage extracts the atomic numeric and binary signals from
// the compound text fields: sex and age, salary amount and currency token,
// experience duration, the latest education year and car ownership.
//
// Each source column is optional; an absent column simply skips its
// derived features. A cell that fails its pattern resolves to the
// documented per-field default, never to an error.
type BasicFeatureStage struct{}

// NewBasicFeatureStage creates the basic feature stage.
func NewBasicFeatureStage() *BasicFeatureStage { return &BasicFeatureStage{} }

// Name implements pipeline.Stage.
func (s *BasicFeatureStage) Name() string { return "basic_features" }

var (
	reSexRu = regexp.MustCompile(`^(Мужчина|Женщина)`)
	reSexEn = regexp.MustCompile(`^(Male|Female)`)

	reAgeRu = regexp.MustCompile(`(\d+)\s*(?:год|года|лет)`)
	reAgeEn = regexp.MustCompile(`(\d+)\s*(?:year|years)`)

	reLeadingInt = regexp.MustCompile(`\d+`)
	reSalaryTail = regexp.MustCompile(`\d+(.*)`)
	reNonAlnum   = regexp.MustCompile(`[^0-9a-zA-Zа-яА-Я]+`)

	reExpYears  = regexp.MustCompile(`(\d+)\s*(?:год|года|лет)`)
	reExpMonths = regexp.MustCompile(`(\d+)\s*(?:месяц|месяца|месяцев)`)
)

const carOwnershipPhrase = "имеется собственный автомобиль"

// Process implements pipeline.Stage.
func (s *BasicFeatureStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.Frame == nil {
		return nil, errors.NewMissingColumnError(s.Name(), "record set")
	}
	f := ctx.Frame.Copy()
	n := f.NumRows()

	if f.Has(colSexAge) {
		sex := make([]frame.Value, n)
		age := make([]frame.Value, n)
		for i := 0; i < n; i++ {
			sex[i], age[i] = parseSexAge(f.At(i, colSexAge).String())
		}
		if err := f.AddColumn(ColSex, sex); err != nil {
			return nil, err
		}
		if err := f.AddColumn(ColAge, age); err != nil {
			return nil, err
		}
	}

	if f.Has(colSalary) {
		salary := make([]frame.Value, n)
		currency := make([]frame.Value, n)
		for i := 0; i < n; i++ {
			salary[i], currency[i] = parseSalaryCurrency(f.At(i, colSalary).String())
		}
		if err := f.AddColumn(ColSalary, salary); err != nil {
			return nil, err
		}
		if err := f.AddColumn(ColCurrency, currency); err != nil {
			return nil, err
		}
	}

	if f.Has(colExperience) {
		exp := make([]frame.Value, n)
		for i := 0; i < n; i++ {
			exp[i] = parseExperienceYears(f.At(i, colExperience).String())
		}
		if err := f.AddColumn(ColExperience, exp); err != nil {
			return nil, err
		}
	}

	if f.Has(colEducation) {
		years := make([]frame.Value, n)
		for i := 0; i < n; i++ {
			years[i] = parseEducationLastYear(f.At(i, colEducation).String())
		}
		if err := f.AddColumn(ColEduLastYear, years); err != nil {
			return nil, err
		}
	}

	if f.Has(colCar) {
		car := make([]frame.Value, n)
		for i := 0; i < n; i++ {
			car[i] = parseHasCar(f.At(i, colCar).String())
		}
		if err := f.AddColumn(ColHasCar, car); err != nil {
			return nil, err
		}
	}

	ctx.Frame = f
	return ctx, nil
}

// parseSexAge matches the gender token at the start of the compound field,
// Russian first, then English mapped onto the Russian tokens so the rest
// of the pipeline sees one vocabulary. Age is the first integer followed
// by a years unit, again Russian first with English as fallback.
func parseSexAge(s string) (sex, age frame.Value) {
	sex = frame.NA()
	if m := reSexRu.FindStringSubmatch(s); m != nil {
		sex = frame.Str(m[1])
	} else if m := reSexEn.FindStringSubmatch(s); m != nil {
		switch m[1] {
		case "Male":
			sex = frame.Str("Мужчина")
		case "Female":
			sex = frame.Str("Женщина")
		}
	}

	age = frame.NA()
	lower := strings.ToLower(s)
	m := reAgeRu.FindStringSubmatch(lower)
	if m == nil {
		m = reAgeEn.FindStringSubmatch(lower)
	}
	if m != nil {
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			age = frame.Int(v)
		}
	}
	return sex, age
}

// parseSalaryCurrency strips the thousands separators, takes the leading
// integer as the amount and the last alphanumeric token after the digits
// as the currency; no trailing text means currency "unknown".
func parseSalaryCurrency(s string) (salary, currency frame.Value) {
	compact := strings.ReplaceAll(strings.ReplaceAll(s, " ", " "), " ", "")

	salary = frame.NA()
	if digits := reLeadingInt.FindString(compact); digits != "" {
		if v, err := strconv.ParseFloat(digits, 64); err == nil {
			salary = frame.Float(v)
		}
	}

	currency = frame.Str("unknown")
	if m := reSalaryTail.FindStringSubmatch(compact); m != nil {
		tail := strings.ToLower(strings.TrimSpace(m[1]))
		tokens := reNonAlnum.Split(tail, -1)
		last := ""
		for _, tok := range tokens {
			if tok != "" {
				last = tok
			}
		}
		if last != "" {
			currency = frame.Str(last)
		}
	}
	return salary, currency
}

// parseExperienceYears reads only the first line of the experience field,
// combines the year and month counts as years + months/12 rounded to two
// decimals. A combined zero means the duration was absent, so the result
// is missing rather than zero experience.
func parseExperienceYears(s string) frame.Value {
	firstLine := s
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		firstLine = s[:i]
	}

	years, months := 0.0, 0.0
	if m := reExpYears.FindStringSubmatch(firstLine); m != nil {
		years, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := reExpMonths.FindStringSubmatch(firstLine); m != nil {
		months, _ = strconv.ParseFloat(m[1], 64)
	}

	total := years + months/12.0
	if total == 0 {
		return frame.NA()
	}
	return frame.Float(math.Round(total*100) / 100)
}

// parseEducationLastYear scans for standalone 4-digit years in 1900..2099
// and keeps the maximum. Neighbor runes are checked manually because Go's
// \b does not treat Cyrillic letters as word characters.
func parseEducationLastYear(s string) frame.Value {
	best := 0
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if !unicode.IsDigit(runes[i]) {
			i++
			continue
		}
		j := i
		for j < len(runes) && unicode.IsDigit(runes[j]) {
			j++
		}
		if j-i == 4 && boundaryBefore(runes, i) && boundaryAfter(runes, j) {
			year, _ := strconv.Atoi(string(runes[i:j]))
			if year >= 1900 && year <= 2099 && year > best {
				best = year
			}
		}
		i = j
	}
	if best == 0 {
		return frame.NA()
	}
	return frame.Int(int64(best))
}

func boundaryBefore(runes []rune, i int) bool {
	return i == 0 || !isWordRune(runes[i-1])
}

func boundaryAfter(runes []rune, j int) bool {
	return j == len(runes) || !isWordRune(runes[j])
}

// parseHasCar is an exact-phrase signal; anything else is 0, never missing.
func parseHasCar(s string) frame.Value {
	if strings.Contains(strings.ToLower(s), carOwnershipPhrase) {
		return frame.Int(1)
	}
	return frame.Int(0)
}
