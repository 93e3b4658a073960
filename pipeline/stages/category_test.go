package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhprep/hhprep/frame"
	"github.com/hhprep/hhprep/pipeline"
)

func TestParseCityMobility(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantCity   string
		wantReloc  int64
		wantTrips  string
	}{
		{
			"willing everything",
			"Москва, готов к переезду, готов к командировкам",
			"Москва", 1, TripsRegular,
		},
		{
			"not willing wins over willing",
			"Казань, готов к переезду, не готов к переезду",
			"Казань", 0, TripsUnknown,
		},
		{
			"refusal before willingness still wins",
			"Казань, не готов к переезду, готов к переезду",
			"Казань", 0, TripsUnknown,
		},
		{
			"female forms",
			"Санкт-Петербург, готова к переезду, готова к редким командировкам",
			"Санкт-Петербург", 1, TripsRare,
		},
		{
			"trip refusal",
			"Омск, не готов к командировкам",
			"Омск", 0, TripsNone,
		},
		{
			"rare beats general willingness",
			"Тверь, готов к редким командировкам",
			"Тверь", 0, TripsRare,
		},
		{
			"city only",
			"Новосибирск",
			"Новосибирск", 0, TripsUnknown,
		},
		{
			"empty field",
			"",
			"", 0, TripsUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, reloc, trips := parseCityMobility(tt.in)
			assert.Equal(t, tt.wantCity, city.String())
			assert.True(t, frame.Int(tt.wantReloc).Equal(reloc), "reloc: want %d got %v", tt.wantReloc, reloc)
			assert.Equal(t, tt.wantTrips, trips.String())
		})
	}
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"three known tokens sorted", "удаленная работа, полный день, вахтовый метод", "fullday|remote|rotation"},
		{"single", "полный день", "fullday"},
		{"english aliases", "full day, remote working", "fullday|remote"},
		{"unknown becomes other", "полный день, свободный выезд", "fullday|other"},
		{"duplicates collapse", "полный день, full day", "fullday"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSchedule(tt.in).String())
		})
	}
}

func TestCategoryFeatureStage(t *testing.T) {
	f := frame.New(colCity, colSchedule)
	require.NoError(t, f.AppendRow(
		frame.Str("Москва, готов к переезду, не готов к командировкам"),
		frame.Str("сменный график, гибкий график"),
	))

	ctx, err := NewCategoryFeatureStage().Process(&pipeline.Context{Frame: f})
	require.NoError(t, err)

	out := ctx.Frame
	assert.Equal(t, "Москва", out.At(0, ColCityNorm).String())
	assert.True(t, frame.Int(1).Equal(out.At(0, ColRelocation)))
	assert.Equal(t, TripsNone, out.At(0, ColBusinessTrips).String())
	assert.Equal(t, "flexible|shifts", out.At(0, ColScheduleNorm).String())
}
