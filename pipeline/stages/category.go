package stages

import (
	"sort"
	"strings"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/errors"
)

// CategoryFeatureStage extracts the multi-part categorical signals: the
// city, the relocation flag, the business-trip level and the normalized
// work-schedule set.
type CategoryFeatureStage struct{}

// NewCategoryFeatureStage creates the category feature stage.
func NewCategoryFeatureStage() *CategoryFeatureStage { return &CategoryFeatureStage{} }

// Name implements pipeline.Stage.
func (s *CategoryFeatureStage) Name() string { return "category_features" }

// Business-trip levels. TripsUnknown marks a field that never mentions
// trips at all, which is different from an explicit "not willing".
const (
	TripsUnknown = "unknown"
	TripsNone    = "none"
	TripsRare    = "rare"
	TripsRegular = "regular"
)

// Process implements pipeline.Stage.
func (s *CategoryFeatureStage) Process(ctx *pipeline.Context) (*pipeline.Context, error) {
	if ctx.Frame == nil {
		return nil, errors.NewMissingColumnError(s.Name(), "record set")
	}
	f := ctx.Frame.Copy()
	n := f.NumRows()

	if f.Has(colCity) {
		city := make([]frame.Value, n)
		reloc := make([]frame.Value, n)
		trips := make([]frame.Value, n)
		for i := 0; i < n; i++ {
			c, r, tr := parseCityMobility(f.At(i, colCity).String())
			city[i], reloc[i], trips[i] = c, r, tr
		}
		if err := f.AddColumn(ColCityNorm, city); err != nil {
			return nil, err
		}
		if err := f.AddColumn(ColRelocation, reloc); err != nil {
			return nil, err
		}
		if err := f.AddColumn(ColBusinessTrips, trips); err != nil {
			return nil, err
		}
	}

	if f.Has(colSchedule) {
		sched := make([]frame.Value, n)
		for i := 0; i < n; i++ {
			sched[i] = parseSchedule(f.At(i, colSchedule).String())
		}
		if err := f.AddColumn(ColScheduleNorm, sched); err != nil {
			return nil, err
		}
	}

	ctx.Frame = f
	return ctx, nil
}

// parseCityMobility splits the compound location field on commas. The
// first part is the city. Relocation is willing only when an explicit
// willing signal is present and no part carries a "not willing" signal:
// a refusal anywhere wins over willingness found in another part.
func parseCityMobility(s string) (city, relocation, trips frame.Value) {
	parts := splitParts(s)

	if len(parts) > 0 {
		city = frame.Str(parts[0])
	} else {
		city = frame.Str("")
	}

	lower := make([]string, len(parts))
	for i, p := range parts {
		lower[i] = strings.ToLower(p)
	}

	willing, refused := false, false
	for _, p := range lower {
		if !strings.Contains(p, "переезд") {
			continue
		}
		if strings.Contains(p, "не готов") || strings.Contains(p, "не готова") {
			refused = true
			continue
		}
		if strings.Contains(p, "готов к переезду") || strings.Contains(p, "готова к переезду") {
			willing = true
		}
	}
	if willing && !refused {
		relocation = frame.Int(1)
	} else {
		relocation = frame.Int(0)
	}

	trips = frame.Str(parseTripsLevel(lower))
	return city, relocation, trips
}

// parseTripsLevel resolves the three-level trips enum. An explicit refusal
// on any trip-mentioning part short-circuits to none; otherwise a "rare"
// qualifier beats the general willingness signal; a field that never
// mentions trips stays unknown.
func parseTripsLevel(parts []string) string {
	level := TripsUnknown
	for _, p := range parts {
		if !strings.Contains(p, "командиров") {
			continue
		}
		if strings.Contains(p, "не готов") || strings.Contains(p, "не готова") {
			return TripsNone
		}
		if strings.Contains(p, "редк") {
			level = TripsRare
			continue
		}
		if level == TripsUnknown && (strings.Contains(p, "готов") || strings.Contains(p, "готова")) {
			level = TripsRegular
		}
	}
	return level
}

// scheduleAliases maps the known Russian and English phrasings onto the
// closed token set. Matching is exact after trimming and lowercasing.
var scheduleAliases = map[string]string{
	"полный день":         "fullday",
	"full day":            "fullday",
	"гибкий график":       "flexible",
	"flexible schedule":   "flexible",
	"удаленная работа":    "remote",
	"remote working":      "remote",
	"сменный график":      "shifts",
	"shift schedule":      "shifts",
	"вахтовый метод":      "rotation",
	"rotation based work": "rotation",
}

// parseSchedule splits the multi-valued schedule field on commas, maps
// each token onto the closed set (anything unrecognized becomes "other"),
// deduplicates, sorts and joins with "|" into one compact value.
func parseSchedule(s string) frame.Value {
	set := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		token, ok := scheduleAliases[strings.ToLower(part)]
		if !ok {
			token = "other"
		}
		set[token] = true
	}
	if len(set) == 0 {
		return frame.Str("")
	}
	tokens := make([]string, 0, len(set))
	for tok := range set {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return frame.Str(strings.Join(tokens, "|"))
}
