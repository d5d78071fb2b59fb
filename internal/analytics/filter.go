// Package analytics implements the filter and aggregation engine: pure
// functions over the enriched table. Nothing here mutates its input; every
// call works on an independently-built view, so concurrent readers of the
// shared enriched table are safe.
package analytics

import (
	"sort"

	"brewboard/internal/core"
)

// Sentinel selections meaning "no filter on this axis".
const (
	AllStores = "All stores"
	AllMonths = "All months"
)

// Filter is one user selection. Zero values are treated as the sentinels.
type Filter struct {
	Store string `json:"store"`
	Month string `json:"month"`
}

// Normalize maps empty selections to the sentinels.
func (f Filter) Normalize() Filter {
	if f.Store == "" {
		f.Store = AllStores
	}
	if f.Month == "" {
		f.Month = AllMonths
	}
	return f
}

// Key is a stable cache key for the selection.
func (f Filter) Key() string {
	f = f.Normalize()
	return f.Store + "|" + f.Month
}

// Apply returns the rows matching the selection. The two predicates combine
// conjunctively; an empty result is valid, not an error. The returned slice
// is always freshly allocated so callers can never alias each other.
func Apply(rows []core.Row, f Filter) []core.Row {
	f = f.Normalize()
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		if f.Store != AllStores && r.Store != f.Store {
			continue
		}
		if f.Month != AllMonths && r.Month != f.Month {
			continue
		}
		out = append(out, r)
	}
	return out
}

// StoreOptions returns the selectable store values: the sentinel followed by
// the sorted distinct store locations observed in the table.
func StoreOptions(rows []core.Row) []string {
	return options(rows, AllStores, func(r core.Row) string { return r.Store })
}

// MonthOptions returns the selectable month values: the sentinel followed by
// the sorted distinct YYYY-MM labels observed in the table.
func MonthOptions(rows []core.Row) []string {
	return options(rows, AllMonths, func(r core.Row) string { return r.Month })
}

func options(rows []core.Row, sentinel string, key func(core.Row) string) []string {
	seen := map[string]bool{}
	out := []string{sentinel}
	for _, r := range rows {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out[1:])
	return out
}
