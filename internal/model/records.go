package model

import "time"

// RawRecord is one observation as returned by the SIDRA values API,
// before any cleaning. All fields are the raw strings from the wire.
type RawRecord struct {
	Sector    string `json:"sector"`
	Indicator string `json:"indicator"`
	Category  string `json:"category"`
	Period    string `json:"period"`
	Value     string `json:"value"`
}

// NormalizedRecord is the canonical per-sector row produced by the cleaner.
// Date is always YYYY-MM. A nil Value means the statistic was published as
// explicitly absent ("-", "...", "X" in SIDRA), not zero.
type NormalizedRecord struct {
	Category string   `json:"category"`
	Date     string   `json:"date"`
	Value    *float64 `json:"value"`
}

// Row is a persisted relational row for one (sector, indicator) table.
type Row struct {
	Category string   `json:"category_code"`
	Date     string   `json:"date"`
	Value    *float64 `json:"value"`
}

// Entry is one labeled value inside an aggregated document.
type Entry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Document is the chart-ready shape served to front-ends:
// {_id: <key>, data: [{name, value}, ...]}.
type Document struct {
	ID   string  `json:"_id"`
	Data []Entry `json:"data"`
}

// Run is one execution of the update pipeline.
type Run struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RunError is a per-stage failure recorded during a run. Failures are
// recorded and skipped so one bad indicator does not abort the sector run.
type RunError struct {
	RunID     string    `json:"run_id"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Run statuses, in the order they normally occur.
const (
	RunPending   = "pending"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)
