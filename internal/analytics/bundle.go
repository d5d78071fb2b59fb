package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"brewboard/internal/core"
)

// DetailRow is the display projection of one filtered transaction.
type DetailRow struct {
	Date       string          `json:"transaction_date"`
	Store      string          `json:"store_location"`
	Product    string          `json:"product_type"`
	Qty        int64           `json:"transaction_qty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalSales decimal.Decimal `json:"total_sales"`
	DayOfWeek  string          `json:"day_of_week"`
	Hour       int             `json:"hour"`
	DayPart    string          `json:"day_part"`
}

// Bundle is everything one filter selection produces: the KPIs, the eight
// aggregation tables, and the detail rows, computed in a single pass over
// the filtered view. The presentation layer consumes it verbatim.
type Bundle struct {
	Filter             Filter       `json:"filter"`
	KPIs               KPIs         `json:"kpis"`
	RevenueByStore     []Point      `json:"revenue_by_store"`
	RevenueByMonth     []Point      `json:"revenue_by_month"`
	RevenueByDayOfWeek []Point      `json:"revenue_by_day_of_week"`
	RevenueByHour      []Point      `json:"revenue_by_hour"`
	TicketsByDayPart   []CountPoint `json:"tickets_by_day_part"`
	TopProducts        []Point      `json:"top_products"`
	RevenueByDayPart   []Point      `json:"revenue_by_day_part"`
	Heatmap            Heatmap      `json:"heatmap"`
	Details            []DetailRow  `json:"details"`
}

// Compute filters the enriched table and derives the full bundle.
func Compute(rows []core.Row, f Filter) Bundle {
	f = f.Normalize()
	view := Apply(rows, f)
	return Bundle{
		Filter:             f,
		KPIs:               ComputeKPIs(view),
		RevenueByStore:     RevenueByStore(view),
		RevenueByMonth:     RevenueByMonth(view),
		RevenueByDayOfWeek: RevenueByDayOfWeek(view),
		RevenueByHour:      RevenueByHour(view),
		TicketsByDayPart:   TicketsByDayPart(view),
		TopProducts:        TopProducts(view),
		RevenueByDayPart:   RevenueByDayPart(view),
		Heatmap:            RevenueHeatmap(view),
		Details:            DetailRows(view),
	}
}

// DetailRows projects the view to the display column set, sorted descending
// by transaction date. Rows sharing a date keep their input order.
func DetailRows(view []core.Row) []DetailRow {
	ordered := append([]core.Row(nil), view...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.After(ordered[j].Date.Time)
	})
	out := make([]DetailRow, 0, len(ordered))
	for _, r := range ordered {
		out = append(out, DetailRow{
			Date:       r.Date.Format("2006-01-02"),
			Store:      r.Store,
			Product:    r.Product,
			Qty:        r.Qty,
			UnitPrice:  r.UnitPrice,
			TotalSales: r.TotalSales,
			DayOfWeek:  r.DayOfWeek,
			Hour:       r.Hour,
			DayPart:    r.DayPart,
		})
	}
	return out
}
