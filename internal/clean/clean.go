// Package clean validates and normalizes raw SIDRA records into the
// canonical per-sector schema. Malformed rows are skipped and counted,
// never fatal; only an entirely empty result is an error.
package clean

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"ecotrack/internal/model"
)

// ErrEmptyDataset signals that zero rows survived cleaning. The pipeline
// skips the indicator for this cycle instead of failing the run.
var ErrEmptyDataset = errors.New("clean: no records survived cleaning")

// SIDRA publishes roll-up rows alongside the categories; they are dropped
// so aggregation does not double count.
var unwantedCategories = map[string]struct{}{
	"Total": {},
	"Índice de receita nominal de serviços": {},
}

// Portuguese month names as they appear in SIDRA period labels.
var monthNames = map[string]string{
	"janeiro": "01", "fevereiro": "02", "março": "03", "abril": "04",
	"maio": "05", "junho": "06", "julho": "07", "agosto": "08",
	"setembro": "09", "outubro": "10", "novembro": "11", "dezembro": "12",
}

var (
	monthYearRe = regexp.MustCompile(`^([a-zç]+)\s+(\d{4})$`)
	isoRe       = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	digitsRe    = regexp.MustCompile(`^\d+$`)
)

// Cleaner normalizes raw records for one indicator at a time.
type Cleaner struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Cleaner {
	return &Cleaner{log: log}
}

// Normalize converts a raw batch into normalized records, dropping rows
// that fail validation. It returns the survivors, the drop count, and
// ErrEmptyDataset when nothing survives.
func (c *Cleaner) Normalize(raws []model.RawRecord) ([]model.NormalizedRecord, int, error) {
	records := make([]model.NormalizedRecord, 0, len(raws))
	dropped := 0

	for _, raw := range raws {
		rec, err := normalizeRecord(raw)
		if err != nil {
			dropped++
			c.log.Debug("dropped record",
				zap.String("sector", raw.Sector),
				zap.String("indicator", raw.Indicator),
				zap.String("category", raw.Category),
				zap.String("period", raw.Period),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	if dropped > 0 {
		c.log.Info("records dropped during cleaning",
			zap.String("sector", sectorOf(raws)),
			zap.Int("dropped", dropped),
			zap.Int("kept", len(records)))
	}
	if len(records) == 0 {
		return nil, dropped, ErrEmptyDataset
	}
	return records, dropped, nil
}

func sectorOf(raws []model.RawRecord) string {
	if len(raws) == 0 {
		return ""
	}
	return raws[0].Sector
}

func normalizeRecord(raw model.RawRecord) (model.NormalizedRecord, error) {
	category := strings.TrimSpace(raw.Category)
	if category == "" {
		return model.NormalizedRecord{}, fmt.Errorf("empty category")
	}
	if _, unwanted := unwantedCategories[category]; unwanted {
		return model.NormalizedRecord{}, fmt.Errorf("roll-up category %q", category)
	}

	date, err := NormalizeDate(raw.Period)
	if err != nil {
		return model.NormalizedRecord{}, err
	}

	value, err := parseValue(raw.Value)
	if err != nil {
		return model.NormalizedRecord{}, err
	}

	return model.NormalizedRecord{Category: category, Date: date, Value: value}, nil
}

// NormalizeDate maps a SIDRA period label to YYYY-MM. Accepted shapes:
//
//	"janeiro 2022"  -> "2022-01"   (month names, any casing)
//	"202201"        -> "2022-01"   (period codes)
//	"2022-01"       -> "2022-01"
//	"2022"          -> "2022-01"   (annual tables)
//
// Anything else is rejected as malformed rather than guessed.
func NormalizeDate(period string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(period))
	if p == "" {
		return "", fmt.Errorf("empty date")
	}

	if m := monthYearRe.FindStringSubmatch(p); m != nil {
		month, ok := monthNames[m[1]]
		if !ok {
			return "", fmt.Errorf("unknown month name %q", m[1])
		}
		return m[2] + "-" + month, nil
	}

	if m := isoRe.FindStringSubmatch(p); m != nil {
		if !validMonth(m[2]) {
			return "", fmt.Errorf("month out of range in %q", period)
		}
		return m[1] + "-" + m[2], nil
	}

	if digitsRe.MatchString(p) {
		switch len(p) {
		case 6: // YYYYMM period code
			if !validMonth(p[4:]) {
				return "", fmt.Errorf("month out of range in %q", period)
			}
			return p[:4] + "-" + p[4:], nil
		case 4: // annual publication, pinned to January
			return p + "-01", nil
		}
	}

	return "", fmt.Errorf("malformed date %q", period)
}

func validMonth(mm string) bool {
	n, err := strconv.Atoi(mm)
	return err == nil && n >= 1 && n <= 12
}

// parseValue converts a SIDRA value string. The publication's absence
// markers become a nil value; other non-numeric strings are an error.
func parseValue(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "-", "...", "X", "":
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("non-numeric value %q", s)
	}
	return &v, nil
}
