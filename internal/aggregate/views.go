package aggregate

import (
	"context"

	"ecotrack/internal/model"
	"ecotrack/internal/store"
)

// View is one tagged aggregation specification. The build function is the
// dedicated query+reshape implementation for that combination.
type View struct {
	Collection string
	Sector     string
	Indicator  string
	Grain      Grain
	Grouping   Grouping

	// Ranked views only: keep the TopN largest entries (0 keeps all).
	TopN int
	// Null values contribute 0 instead of being excluded.
	TreatNullAsZero bool
	// Drop groups whose every value is zero (discontinued SIDRA series
	// are published as all-zero rows).
	SkipZeroSeries bool

	build func(ctx context.Context, st *store.Store, v View) ([]model.Document, error)
}

func (v View) table() string {
	return store.TableName(v.Sector, v.Indicator)
}

// Views returns the closed set of aggregation views, one per collection.
func Views() []View {
	return []View{
		{
			Collection: "commerce_volume",
			Sector:     "commerce", Indicator: "volume",
			Grain: Monthly, Grouping: ByPeriod,
			build: buildTotalSeries,
		},
		{
			Collection: "commerce_division",
			Sector:     "commerce", Indicator: "volume",
			Grain: Monthly, Grouping: ByDivision,
			TreatNullAsZero: true,
			build:           buildDivisionByPeriod,
		},
		{
			Collection: "commerce_ranking",
			Sector:     "commerce", Indicator: "volume",
			Grain: Monthly, Grouping: ByPeriod,
			build: buildPeriodRanking,
		},
		{
			Collection: "commerce_revenue_expense_year",
			Sector:     "commerce", Indicator: "revenue",
			Grain: Yearly, Grouping: ByPeriod,
			build: buildRevenueExpenseYearly,
		},
		{
			Collection: "commerce_revenue_expense_grouped",
			Sector:     "commerce", Indicator: "revenue",
			Grain: Yearly, Grouping: ByDivision,
			build: buildRevenueExpenseGrouped,
		},
		{
			Collection: "industry_production_series",
			Sector:     "industry", Indicator: "production",
			Grain: Monthly, Grouping: ByActivity,
			build: buildActivitySeries,
		},
		{
			Collection: "industry_revenue_yearly",
			Sector:     "industry", Indicator: "revenue",
			Grain: Yearly, Grouping: ByActivity,
			build: buildActivityYearly,
		},
		{
			Collection: "service_volume_monthly",
			Sector:     "service", Indicator: "volume",
			Grain: Monthly, Grouping: ByActivity,
			SkipZeroSeries: true,
			build:          buildActivitySeries,
		},
		{
			Collection: "service_volume_ranking",
			Sector:     "service", Indicator: "volume",
			Grain: Yearly, Grouping: ByPeriod,
			TopN: 10, SkipZeroSeries: true,
			build: buildYearlyRanking,
		},
		{
			Collection: "service_revenue_monthly",
			Sector:     "service", Indicator: "revenue",
			Grain: Monthly, Grouping: ByActivity,
			SkipZeroSeries: true,
			build:          buildActivitySeries,
		},
		{
			Collection: "service_revenue_ranking",
			Sector:     "service", Indicator: "revenue",
			Grain: Yearly, Grouping: ByPeriod,
			TopN: 10, SkipZeroSeries: true,
			build: buildYearlyRanking,
		},
	}
}

// ---------------------- builders ----------------------

// buildTotalSeries sums all categories per period: one document per date
// with a single "volume" entry. Dates with only absent values produce no
// document.
func buildTotalSeries(ctx context.Context, st *store.Store, v View) ([]model.Document, error) {
	rows, err := st.Rows(ctx, v.table())
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	for _, r := range rows {
		if r.Value == nil && !v.TreatNullAsZero {
			continue
		}
		totals[r.Date] += value(r)
	}

	docs := make([]model.Document, 0, len(totals))
	for _, date := range sortedKeys(totals) {
		docs = append(docs, model.Document{
			ID:   date,
			Data: []model.Entry{{Name: v.Indicator, Value: round2(totals[date])}},
		})
	}
	return docs, nil
}

// buildDivisionByPeriod sums volumes into the three commerce divisions:
// one document per date with one entry per division, zero-filled.
func buildDivisionByPeriod(ctx context.Context, st *store.Store, v View) ([]model.Document, error) {
	rows, err := st.Rows(ctx, v.table())
	if err != nil {
		return nil, err
	}

	byDate := map[string]map[string]float64{}
	for _, r := range rows {
		div := divisionOf(r.Category)
		if div == "" {
			continue
		}
		if r.Value == nil && !v.TreatNullAsZero {
			continue
		}
		if byDate[r.Date] == nil {
			byDate[r.Date] = map[string]float64{}
			for _, d := range divisions {
				byDate[r.Date][d] = 0
			}
		}
		byDate[r.Date][div] += value(r)
	}

	docs := make([]model.Document, 0, len(byDate))
	for _, date := range sortedKeys(byDate) {
		entries := make([]model.Entry, 0, len(divisions))
		for _, d := range divisions {
			entries = append(entries, model.Entry{Name: d, Value: round2(byDate[date][d])})
		}
		docs = append(docs, model.Document{ID: date, Data: entries})
	}
	return docs, nil
}

// buildPeriodRanking ranks categories per date, descending by value.
// Equal values keep the category order of the underlying rows.
func buildPeriodRanking(ctx context.Context, st *store.Store, v View) ([]model.Document, error) {
	rows, err := st.Rows(ctx, v.table())
	if err != nil {
		return nil, err
	}

	byDate := map[string][]model.Entry{}
	for _, r := range rows { // rows arrive ordered by date, category
		if r.Value == nil && !v.TreatNullAsZero {
			continue
		}
		byDate[r.Date] = append(byDate[r.Date], model.Entry{
			Name:  r.Category,
			Value: round2(value(r)),
		})
	}

	docs := make([]model.Document, 0, len(byDate))
	for _, date := range sortedKeys(byDate) {
		docs = append(docs, model.Document{ID: date, Data: rankDesc(byDate[date], v.TopN)})
	}
	return docs, nil
}

// buildRevenueExpenseYearly sums commerce revenue and expense per year,
// scaled to millions: one document per year with a revenue and an expense
// entry.
func buildRevenueExpenseYearly(ctx context.Context, st *store.Store, v View) ([]model.Document, error) {
	type metric struct {
		name  string
		table string
	}
	metrics := []metric{
		{"revenue", store.TableName("commerce", "revenue")},
		{"expense", store.TableName("commerce", "expense")},
	}

	byYear := map[string]map[string]float64{}
	for _, m := range metrics {
		rows, err := st.Rows(ctx, m.table)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			if r.Value == nil && !v.TreatNullAsZero {
				continue
			}
			year := yearOf(r.Date)
			if byYear[year] == nil {
				byYear[year] = map[string]float64{}
			}
			byYear[year][m.name] += value(r)
		}
	}

	docs := make([]model.Document, 0, len(byYear))
	for _, year := range sortedKeys(byYear) {
		entries := []model.Entry{}
		for _, m := range metrics {
			if total, ok := byYear[year][m.name]; ok {
				entries = append(entries, model.Entry{Name: m.name, Value: round2(total / 1_000_000)})
			}
		}
		docs = append(docs, model.Document{ID: year, Data: entries})
	}
	return docs, nil
}

// buildRevenueExpenseGrouped sums commerce revenue and expense per year
// and division, scaled to millions. Entry names compose the metric and
// division: "revenue_retail_trade".
func buildRevenueExpenseGrouped(ctx context.Context, st *store.Store, v View) ([]model.Document, error) {
	type metric struct {
		name  string
		table string
	}
	metrics := []metric{
		{"revenue", store.TableName("commerce", "revenue")},
		{"expense", store.TableName("commerce", "expense")},
	}

	byYear := map[string]map[string]float64{}
	for _, m := range metrics {
		rows, err := st.Rows(ctx, m.table)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			div := divisionOf(r.Category)
			if div == "" {
				continue
			}
			if r.Value == nil && !v.TreatNullAsZero {
				continue
			}
			year := yearOf(r.Date)
			if byYear[year] == nil {
				byYear[year] = map[string]float64{}
			}
			byYear[year][m.name+"_"+div] += value(r)
		}
	}

	docs := make([]model.Document, 0, len(byYear))
	for _, year := range sortedKeys(byYear) {
		entries := []model.Entry{}
		for _, m := range metrics {
			for _, d := range divisions {
				key := m.name + "_" + d
				if total, ok := byYear[year][key]; ok {
					entries = append(entries, model.Entry{Name: key, Value: round2(total / 1_000_000)})
				}
			}
		}
		docs = append(docs, model.Document{ID: year, Data: entries})
	}
	return docs, nil
}

// buildActivitySeries emits one time-series document per activity: the
// document key is the slugged activity name and each entry pairs a date
// with its value.
func buildActivitySeries(ctx context.Context, st *store.Store, v View) ([]model.Document, error) {
	rows, err := st.Rows(ctx, v.table())
	if err != nil {
		return nil, err
	}

	series := map[string][]model.Entry{}
	for _, r := range rows { // rows arrive ordered by date, category
		if r.Value == nil && !v.TreatNullAsZero {
			continue
		}
		key := slug(r.Category)
		series[key] = append(series[key], model.Entry{Name: r.Date, Value: round2(value(r))})
	}

	docs := make([]model.Document, 0, len(series))
	for _, key := range sortedKeys(series) {
		entries := series[key]
		if v.SkipZeroSeries && allZero(entries) {
			continue
		}
		docs = append(docs, model.Document{ID: key, Data: entries})
	}
	return docs, nil
}

// buildActivityYearly sums each activity per year: one document per
// activity with (year, total) entries.
func buildActivityYearly(ctx context.Context, st *store.Store, v View) ([]model.Document, error) {
	rows, err := st.Rows(ctx, v.table())
	if err != nil {
		return nil, err
	}

	totals := map[string]map[string]float64{}
	for _, r := range rows {
		if r.Value == nil && !v.TreatNullAsZero {
			continue
		}
		key := slug(r.Category)
		if totals[key] == nil {
			totals[key] = map[string]float64{}
		}
		totals[key][yearOf(r.Date)] += value(r)
	}

	docs := make([]model.Document, 0, len(totals))
	for _, key := range sortedKeys(totals) {
		entries := []model.Entry{}
		for _, year := range sortedKeys(totals[key]) {
			entries = append(entries, model.Entry{Name: year, Value: round2(totals[key][year])})
		}
		if v.SkipZeroSeries && allZero(entries) {
			continue
		}
		docs = append(docs, model.Document{ID: key, Data: entries})
	}
	return docs, nil
}

// buildYearlyRanking sums each category per year and ranks categories
// inside each year, descending, truncated to TopN. Categories whose every
// yearly total is zero are dropped before ranking.
func buildYearlyRanking(ctx context.Context, st *store.Store, v View) ([]model.Document, error) {
	rows, err := st.Rows(ctx, v.table())
	if err != nil {
		return nil, err
	}

	totals := map[string]map[string]float64{} // category -> year -> sum
	for _, r := range rows {
		if r.Value == nil && !v.TreatNullAsZero {
			continue
		}
		if totals[r.Category] == nil {
			totals[r.Category] = map[string]float64{}
		}
		totals[r.Category][yearOf(r.Date)] += value(r)
	}

	byYear := map[string][]model.Entry{}
	for _, category := range sortedKeys(totals) {
		years := totals[category]
		if v.SkipZeroSeries && allZeroMap(years) {
			continue
		}
		for _, year := range sortedKeys(years) {
			byYear[year] = append(byYear[year], model.Entry{
				Name:  slug(category),
				Value: round2(years[year]),
			})
		}
	}

	docs := make([]model.Document, 0, len(byYear))
	for _, year := range sortedKeys(byYear) {
		docs = append(docs, model.Document{ID: year, Data: rankDesc(byYear[year], v.TopN)})
	}
	return docs, nil
}

func value(r model.Row) float64 {
	if r.Value == nil {
		return 0
	}
	return *r.Value
}

func allZero(entries []model.Entry) bool {
	for _, e := range entries {
		if e.Value != 0 {
			return false
		}
	}
	return true
}

func allZeroMap(m map[string]float64) bool {
	for _, v := range m {
		if v != 0 {
			return false
		}
	}
	return true
}
