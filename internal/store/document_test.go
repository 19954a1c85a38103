package store

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecotrack/internal/model"
)

func TestUpsertDocumentReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := model.Document{ID: "2022-01", Data: []model.Entry{
		{Name: "volume", Value: 10},
		{Name: "extra", Value: 1},
	}}
	require.NoError(t, s.UpsertDocument(ctx, "commerce_volume", first))

	// replacement drops the old entries entirely
	second := model.Document{ID: "2022-01", Data: []model.Entry{
		{Name: "volume", Value: 25},
	}}
	require.NoError(t, s.UpsertDocument(ctx, "commerce_volume", second))

	docs, err := s.Documents(ctx, "commerce_volume")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	if diff := cmp.Diff(second, docs[0]); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestUpsertDocumentIdempotentPayload(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := model.Document{ID: "2022", Data: []model.Entry{
		{Name: "revenue", Value: 1.5},
		{Name: "expense", Value: 0.75},
	}}
	require.NoError(t, s.UpsertDocument(ctx, "commerce_revenue_expense_year", doc))

	before, ok, err := s.DocumentPayload(ctx, "commerce_revenue_expense_year", "2022")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.UpsertDocument(ctx, "commerce_revenue_expense_year", doc))

	after, ok, err := s.DocumentPayload(ctx, "commerce_revenue_expense_year", "2022")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestDocumentsUnknownCollectionIsEmpty(t *testing.T) {
	s := newTestStore(t)

	docs, err := s.Documents(context.Background(), "never_aggregated")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestDocumentsOrderedByKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertDocuments(ctx, "commerce_volume", []model.Document{
		{ID: "2022-03", Data: []model.Entry{{Name: "volume", Value: 3}}},
		{ID: "2022-01", Data: []model.Entry{{Name: "volume", Value: 1}}},
		{ID: "2022-02", Data: []model.Entry{{Name: "volume", Value: 2}}},
	}))

	docs, err := s.Documents(ctx, "commerce_volume")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "2022-01", docs[0].ID)
	assert.Equal(t, "2022-02", docs[1].ID)
	assert.Equal(t, "2022-03", docs[2].ID)
}
