// Package aggregate turns relational rows into the chart-ready documents
// served by the API. Views form a closed, enumerated set: one dedicated
// query+reshape function per (sector, indicator, grain, grouping)
// combination. Adding an indicator means adding a view, not generalizing
// the engine.
package aggregate

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"ecotrack/internal/model"
	"ecotrack/internal/store"
)

// Grain is the time resolution of a view.
type Grain string

const (
	Monthly Grain = "monthly"
	Yearly  Grain = "yearly"
)

// Grouping is the dimension a view aggregates over.
type Grouping string

const (
	ByActivity Grouping = "by_activity"
	ByDivision Grouping = "by_division"
	ByPeriod   Grouping = "by_period"
)

// Aggregator builds every registered view from the relational store and
// writes the resulting documents back through the document writer.
type Aggregator struct {
	store *store.Store
	log   *zap.Logger
}

func New(st *store.Store, log *zap.Logger) *Aggregator {
	return &Aggregator{store: st, log: log}
}

// BuildView produces the documents for one view without persisting them.
func (a *Aggregator) BuildView(ctx context.Context, v View) ([]model.Document, error) {
	docs, err := v.build(ctx, a.store, v)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", v.Collection, err)
	}
	return docs, nil
}

// Run rebuilds every view and upserts its documents. Re-running on
// unchanged relational data replaces each document with a byte-identical
// payload.
func (a *Aggregator) Run(ctx context.Context) error {
	for _, v := range Views() {
		docs, err := a.BuildView(ctx, v)
		if err != nil {
			return err
		}
		if err := a.store.UpsertDocuments(ctx, v.Collection, docs); err != nil {
			return fmt.Errorf("view %s: %w", v.Collection, err)
		}
		a.log.Info("view aggregated",
			zap.String("collection", v.Collection),
			zap.Int("documents", len(docs)))
	}
	return nil
}

// ---------------------- shaping helpers ----------------------

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func yearOf(date string) string {
	if len(date) < 4 {
		return date
	}
	return date[:4]
}

// Commerce categories carry a numbered prefix identifying their division.
func divisionOf(category string) string {
	switch {
	case strings.HasPrefix(category, "2."):
		return "vehicle_parts_motorcycle"
	case strings.HasPrefix(category, "3."):
		return "wholesale_trade"
	case strings.HasPrefix(category, "4."):
		return "retail_trade"
	}
	return ""
}

var divisions = []string{"vehicle_parts_motorcycle", "wholesale_trade", "retail_trade"}

var slugReplacer = strings.NewReplacer(
	"á", "a", "â", "a", "ã", "a", "à", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// slug folds a category name into a stable document key: diacritics
// stripped, lowercased, spaces replaced by underscores.
func slug(name string) string {
	return strings.ReplaceAll(slugReplacer.Replace(strings.ToLower(name)), " ", "_")
}

// sortedKeys returns map keys in ascending order so documents are emitted
// deterministically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// rankDesc sorts entries descending by value. The sort is stable, so equal
// values keep their original category order. A positive topN truncates.
func rankDesc(entries []model.Entry, topN int) []model.Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
