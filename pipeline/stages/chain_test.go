package stages

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhprep/hhprep/pipeline"
	"github.com/hhprep/hhprep/pkg/log"
)

// Full chain over a miniature export: two resumes sharing a feature key
// with different salaries (merged to the median), one distinct resume and
// one with an implausibly low salary (dropped).
func TestFullChain(t *testing.T) {
	csvText := `"Пол, возраст",ЗП,Город,Опыт (двойное нажатие для полной версии),Образование и ВУЗ,Авто,График,Ищет работу на должность:,Последеняя/нынешняя должность,Последенее/нынешнее место работы
"Мужчина, 30 лет",50 000 руб.,"Москва, готов к переезду, готов к командировкам",Опыт работы 5 лет,Высшее образование 2010,Имеется собственный автомобиль,"полный день, удаленная работа",Инженер,Инженер,ООО Ромашка
"Женщина, 25 лет",40 000 руб.,"Казань, не готов к переезду, готов к командировкам",Опыт работы 2 года,Среднее общее образование,,полный день,Аналитик,Аналитик,ООО Василек
"Мужчина, 30 лет",70 000 руб.,"Москва, готов к переезду, готов к командировкам",Опыт работы 5 лет,Высшее образование 2010,Имеется собственный автомобиль,"полный день, удаленная работа",Инженер,Инженер,ООО Ромашка
"Мужчина, 40 лет",2 000 руб.,"Омск, готов к командировкам",Опыт работы 10 лет,Высшее образование 2005,,полный день,Водитель,Водитель,Такси
`
	path := writeTempCSV(t, csvText)
	logger := log.NewWithWriter("disabled", io.Discard)

	chain := pipeline.NewChain(logger,
		NewCSVLoader(path),
		NewCleaningStage(),
		NewBasicFeatureStage(),
		NewCategoryFeatureStage(),
		NewComplexFeatureStage(),
		NewNormalizationStage(),
		NewEncodingStage(),
		NewSplitStage(ColSalary),
	)

	ctx, err := chain.Run(pipeline.NewContext())
	require.NoError(t, err)
	require.NotNil(t, ctx.X)
	require.NotNil(t, ctx.Y)

	rows, cols := ctx.X.Dims()
	assert.Equal(t, 2, rows)
	assert.Greater(t, cols, 5)
	assert.Equal(t, 60000.0, ctx.Y.AtVec(0))
	assert.Equal(t, 40000.0, ctx.Y.AtVec(1))

	// every feature cell is a real number after encoding
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := ctx.X.At(i, j)
			assert.False(t, v != v, "NaN at %d,%d", i, j)
		}
	}
}
