// Package stages implements the concrete pipeline stages: loading the raw
// export, cleaning text artifacts, extracting features from compound
// Russian free-text fields, normalizing, encoding to numbers and splitting
// into the feature matrix and target vector.
package stages

// Source column names as they appear in the HH.ru export. The misspellings
// are part of the original file format.
const (
	colSexAge       = "Пол, возраст"
	colSalary       = "ЗП"
	colCity         = "Город"
	colExperience   = "Опыт (двойное нажатие для полной версии)"
	colEducation    = "Образование и ВУЗ"
	colCar          = "Авто"
	colSchedule     = "График"
	colWantedRole   = "Ищет работу на должность:"
	colLastRole     = "Последеняя/нынешняя должность"
	colLastWorkSrc  = "Последенее/нынешнее место работы"
	colIndexResidue = "Unnamed: 0"
	colIndexResidu2 = "Unnamed: 0.1"
)

// Derived column names shared by the feature and encoding stages.
const (
	ColSex           = "sex"
	ColAge           = "age"
	ColSalary        = "salary"
	ColCurrency      = "currency"
	ColExperience    = "experience_years"
	ColEduLastYear   = "education_last_year"
	ColHasCar        = "has_car"
	ColCityNorm      = "city"
	ColRelocation    = "relocation"
	ColBusinessTrips = "business_trips"
	ColScheduleNorm  = "schedule"
	ColEduLevel      = "education_level"
	ColHasMaster     = "has_master"
	ColRawEducation  = "raw_education"
	ColPosition      = "position"
	ColLastPosition  = "last_position"
	ColLastWork      = "last_work"
)
