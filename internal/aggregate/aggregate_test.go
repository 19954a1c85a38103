package aggregate

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecotrack/internal/model"
	"ecotrack/internal/sidra"
	"ecotrack/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *store.Store, table string, recs []model.NormalizedRecord) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.EnsureDataset(ctx, table))
	_, err := s.InsertRecords(ctx, table, recs)
	require.NoError(t, err)
}

func fptr(v float64) *float64 { return &v }

func viewByCollection(t *testing.T, collection string) View {
	t.Helper()
	for _, v := range Views() {
		if v.Collection == collection {
			return v
		}
	}
	t.Fatalf("unknown collection %s", collection)
	return View{}
}

func TestYearlyRankingSumsMonths(t *testing.T) {
	s := newTestStore(t)
	agg := New(s, zap.NewNop())

	recs := make([]model.NormalizedRecord, 0, 12)
	for m := 1; m <= 12; m++ {
		recs = append(recs, model.NormalizedRecord{
			Category: "retail_trade",
			Date:     fmt.Sprintf("2022-%02d", m),
			Value:    fptr(float64(m * 10)),
		})
	}
	seed(t, s, "service_volume", recs)

	docs, err := agg.BuildView(context.Background(), viewByCollection(t, "service_volume_ranking"))
	require.NoError(t, err)

	want := []model.Document{
		{ID: "2022", Data: []model.Entry{{Name: "retail_trade", Value: 780}}},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestYearlyRankingOrderAndTopN(t *testing.T) {
	s := newTestStore(t)
	agg := New(s, zap.NewNop())

	var recs []model.NormalizedRecord
	for i := 1; i <= 12; i++ {
		recs = append(recs, model.NormalizedRecord{
			Category: fmt.Sprintf("segment %02d", i),
			Date:     "2022-01",
			Value:    fptr(float64(i)),
		})
	}
	seed(t, s, "service_volume", recs)

	docs, err := agg.BuildView(context.Background(), viewByCollection(t, "service_volume_ranking"))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	entries := docs[0].Data
	require.Len(t, entries, 10) // truncated from 12
	assert.Equal(t, "segment_12", entries[0].Name)
	assert.Equal(t, 12.0, entries[0].Value)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Value, entries[i].Value)
	}
}

func TestYearlyRankingStableTies(t *testing.T) {
	s := newTestStore(t)
	agg := New(s, zap.NewNop())

	seed(t, s, "service_volume", []model.NormalizedRecord{
		{Category: "bravo", Date: "2022-01", Value: fptr(5)},
		{Category: "alpha", Date: "2022-01", Value: fptr(5)},
		{Category: "zulu", Date: "2022-01", Value: fptr(9)},
	})

	docs, err := agg.BuildView(context.Background(), viewByCollection(t, "service_volume_ranking"))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	// ties keep category order
	names := []string{docs[0].Data[0].Name, docs[0].Data[1].Name, docs[0].Data[2].Name}
	assert.Equal(t, []string{"zulu", "alpha", "bravo"}, names)
}

func TestYearlyRankingSkipsAllZeroSeries(t *testing.T) {
	s := newTestStore(t)
	agg := New(s, zap.NewNop())

	seed(t, s, "service_volume", []model.NormalizedRecord{
		{Category: "discontinued", Date: "2022-01", Value: fptr(0)},
		{Category: "discontinued", Date: "2022-02", Value: fptr(0)},
		{Category: "active", Date: "2022-01", Value: fptr(3)},
	})

	docs, err := agg.BuildView(context.Background(), viewByCollection(t, "service_volume_ranking"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Data, 1)
	assert.Equal(t, "active", docs[0].Data[0].Name)
}

func TestTotalSeriesExcludesNulls(t *testing.T) {
	s := newTestStore(t)
	agg := New(s, zap.NewNop())

	seed(t, s, "commerce_volume", []model.NormalizedRecord{
		{Category: "2.1 Vehicles", Date: "2022-01", Value: fptr(10)},
		{Category: "3.1 Wholesale", Date: "2022-01", Value: nil},
		{Category: "4.1 Retail", Date: "2022-01", Value: fptr(2.555)},
		{Category: "4.1 Retail", Date: "2022-02", Value: nil},
	})

	docs, err := agg.BuildView(context.Background(), viewByCollection(t, "commerce_volume"))
	require.NoError(t, err)

	// 2022-02 has only an absent value, so no document is emitted for it
	want := []model.Document{
		{ID: "2022-01", Data: []model.Entry{{Name: "volume", Value: 12.56}}},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestDivisionViewZeroFillsAndMapsPrefixes(t *testing.T) {
	s := newTestStore(t)
	agg := New(s, zap.NewNop())

	seed(t, s, "commerce_volume", []model.NormalizedRecord{
		{Category: "2.1 Vehicles", Date: "2022-01", Value: fptr(7)},
		{Category: "4.1 Retail", Date: "2022-01", Value: fptr(3)},
		{Category: "4.2 Supermarkets", Date: "2022-01", Value: nil}, // counts as 0
		{Category: "9.9 Unmapped", Date: "2022-01", Value: fptr(100)},
	})

	docs, err := agg.BuildView(context.Background(), viewByCollection(t, "commerce_division"))
	require.NoError(t, err)

	want := []model.Document{
		{ID: "2022-01", Data: []model.Entry{
			{Name: "vehicle_parts_motorcycle", Value: 7},
			{Name: "wholesale_trade", Value: 0},
			{Name: "retail_trade", Value: 3},
		}},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestRevenueExpenseYearlyScalesToMillions(t *testing.T) {
	s := newTestStore(t)
	agg := New(s, zap.NewNop())

	seed(t, s, "commerce_revenue", []model.NormalizedRecord{
		{Category: "4.1 Retail", Date: "2022-01", Value: fptr(1_000_000)},
		{Category: "4.2 Supermarkets", Date: "2022-01", Value: fptr(500_000)},
	})
	seed(t, s, "commerce_expense", []model.NormalizedRecord{
		{Category: "4.1 Retail", Date: "2022-01", Value: fptr(750_000)},
	})

	docs, err := agg.BuildView(context.Background(), viewByCollection(t, "commerce_revenue_expense_year"))
	require.NoError(t, err)

	want := []model.Document{
		{ID: "2022", Data: []model.Entry{
			{Name: "revenue", Value: 1.5},
			{Name: "expense", Value: 0.75},
		}},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestActivitySeriesSlugsAndOrders(t *testing.T) {
	s := newTestStore(t)
	agg := New(s, zap.NewNop())

	seed(t, s, "industry_production", []model.NormalizedRecord{
		{Category: "Indústrias extrativas", Date: "2022-02", Value: fptr(2)},
		{Category: "Indústrias extrativas", Date: "2022-01", Value: fptr(1)},
	})

	docs, err := agg.BuildView(context.Background(), viewByCollection(t, "industry_production_series"))
	require.NoError(t, err)

	want := []model.Document{
		{ID: "industrias_extrativas", Data: []model.Entry{
			{Name: "2022-01", Value: 1},
			{Name: "2022-02", Value: 2},
		}},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestRunIsByteIdempotent(t *testing.T) {
	s := newTestStore(t)
	agg := New(s, zap.NewNop())
	ctx := context.Background()

	for _, ds := range sidra.Datasets() {
		require.NoError(t, s.EnsureDataset(ctx, store.TableName(ds.Sector, ds.Indicator)))
	}
	seed(t, s, "commerce_volume", []model.NormalizedRecord{
		{Category: "4.1 Retail", Date: "2022-01", Value: fptr(3)},
	})
	seed(t, s, "service_volume", []model.NormalizedRecord{
		{Category: "lodging", Date: "2022-01", Value: fptr(8)},
	})

	require.NoError(t, agg.Run(ctx))
	before, ok, err := s.DocumentPayload(ctx, "commerce_volume", "2022-01")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, agg.Run(ctx))
	after, ok, err := s.DocumentPayload(ctx, "commerce_volume", "2022-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Comércio varejista":              "comercio_varejista",
		"Serviços de alojamento":          "servicos_de_alojamento",
		"Indústrias de transformação":     "industrias_de_transformacao",
		"already_slugged":                 "already_slugged",
		"Veículos, motocicletas e partes": "veiculos,_motocicletas_e_partes",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug(in), "slug(%q)", in)
	}
}

func TestDivisionOf(t *testing.T) {
	assert.Equal(t, "vehicle_parts_motorcycle", divisionOf("2.1 Vehicles"))
	assert.Equal(t, "wholesale_trade", divisionOf("3.2 Wholesale"))
	assert.Equal(t, "retail_trade", divisionOf("4.5 Retail"))
	assert.Equal(t, "", divisionOf("1.1 Other"))
	assert.Equal(t, "", divisionOf("Retail"))
}
