package sidra

// Classification codes for the tracked categories, as published by IBGE.
const (
	classificationCommerce = "11070/4765,4766,4767,4768,4778,6554,6654,6799,6800," +
		"90130,90131,90132,90152,90156,90157,106765,106774"
	classificationIndustry     = "544/129314,129315,129316"
	classificationIndustryCNAE = "12762/116881,116884,116887,116897,116905,116911," +
		"116952,116960,116965,116985,116994,117007,117015,117029,117039,117048," +
		"117082,117089,117099,117116,117136,117159,117179,117196,117229,117245," +
		"117261,117267,117283"
)

// Dataset identifies one (sector, indicator) query against the SIDRA API.
// Exactly one of Classification / Classifications is set; which one decides
// the column the category name is read from (D4N vs D5N).
type Dataset struct {
	Sector    string
	Indicator string

	Table           string
	Variable        string
	Classification  string
	Classifications map[string]string
	Period          string
}

// Datasets is the closed catalog of indicator queries. Adding an indicator
// means adding an entry here and a view in internal/aggregate.
func Datasets() []Dataset {
	return []Dataset{
		{
			Sector: "commerce", Indicator: "volume",
			Table: "1403", Variable: "310",
			Classification: classificationCommerce,
			Period:         "last 12",
		},
		{
			Sector: "commerce", Indicator: "revenue",
			Table: "1400", Variable: "501",
			Classification: classificationCommerce,
			Period:         "last 12",
		},
		{
			Sector: "commerce", Indicator: "expense",
			Table: "1401", Variable: "1401",
			Classification: classificationCommerce,
			Period:         "last 12",
		},
		{
			Sector: "industry", Indicator: "production",
			Table: "8888", Variable: "12607",
			Classification: classificationIndustry,
			Period:         "last 60",
		},
		{
			Sector: "industry", Indicator: "revenue",
			Table: "1853", Variable: "805",
			Classification: classificationIndustryCNAE,
			Period:         "last 12",
		},
		{
			Sector: "service", Indicator: "volume",
			Table: "8163", Variable: "7168",
			Classifications: map[string]string{"11046": "56726", "1274": "all"},
			Period:          "last 60",
		},
		{
			Sector: "service", Indicator: "revenue",
			Table: "8163", Variable: "7168",
			Classifications: map[string]string{"11046": "56725", "1274": "all"},
			Period:          "last 60",
		},
	}
}

// categoryColumn returns the response column holding the category name.
func (d Dataset) categoryColumn() string {
	if d.Classifications != nil {
		return "D5N"
	}
	return "D4N"
}
