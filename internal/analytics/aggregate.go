package analytics

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"brewboard/internal/core"
)

// Point is one (category, revenue) pair of an ordered aggregation table.
type Point struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// CountPoint is one (category, ticket count) pair.
type CountPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// KPIs are the three scalar summary metrics over the current view.
// AverageOrderValue is revenue divided by row count; on an empty view it is
// zero and Rows carries the zero count so consumers can render "N/A".
type KPIs struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalTickets      int             `json:"total_tickets"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	Rows              int             `json:"rows"`
}

// Heatmap is the day-of-week x hour revenue matrix. Values is row-major in
// the order of Days x Hours; combinations absent from the data are zero.
type Heatmap struct {
	Days   []string            `json:"days"`
	Hours  []int               `json:"hours"`
	Values [][]decimal.Decimal `json:"values"`
}

// ComputeKPIs reduces the view to its scalar metrics.
func ComputeKPIs(rows []core.Row) KPIs {
	k := KPIs{TotalRevenue: decimal.Zero, AverageOrderValue: decimal.Zero, Rows: len(rows)}
	tickets := map[int64]bool{}
	for _, r := range rows {
		k.TotalRevenue = k.TotalRevenue.Add(r.TotalSales)
		tickets[r.ID] = true
	}
	k.TotalTickets = len(tickets)
	if len(rows) > 0 {
		k.AverageOrderValue = k.TotalRevenue.Div(decimal.NewFromInt(int64(len(rows))))
	}
	return k
}

// RevenueByStore sums revenue per store location, descending by revenue.
func RevenueByStore(rows []core.Row) []Point {
	pts := sumBy(rows, func(r core.Row) string { return r.Store })
	sort.SliceStable(pts, func(i, j int) bool {
		if !pts[i].Value.Equal(pts[j].Value) {
			return pts[i].Value.GreaterThan(pts[j].Value)
		}
		return pts[i].Label < pts[j].Label
	})
	return pts
}

// RevenueByMonth sums revenue per YYYY-MM label, ascending by label.
func RevenueByMonth(rows []core.Row) []Point {
	pts := sumBy(rows, func(r core.Row) string { return r.Month })
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Label < pts[j].Label })
	return pts
}

// RevenueByDayOfWeek sums revenue per weekday in Monday-first calendar
// order. A weekday string outside the canonical order is appended after it
// in first-observed order rather than dropped.
func RevenueByDayOfWeek(rows []core.Row) []Point {
	return canonical(sumBy(rows, func(r core.Row) string { return r.DayOfWeek }), core.WeekdayOrder, false)
}

// RevenueByHour sums revenue per observed hour, ascending 0-23.
func RevenueByHour(rows []core.Row) []Point {
	byHour := map[int]decimal.Decimal{}
	for _, r := range rows {
		byHour[r.Hour] = byHour[r.Hour].Add(r.TotalSales)
	}
	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	pts := make([]Point, 0, len(hours))
	for _, h := range hours {
		pts = append(pts, Point{Label: hourLabel(h), Value: byHour[h]})
	}
	return pts
}

// TicketsByDayPart counts distinct transaction IDs per observed day part,
// in the fixed Morning..Late Night order.
func TicketsByDayPart(rows []core.Row) []CountPoint {
	ids := map[string]map[int64]bool{}
	firstSeen := []string{}
	for _, r := range rows {
		if ids[r.DayPart] == nil {
			ids[r.DayPart] = map[int64]bool{}
			firstSeen = append(firstSeen, r.DayPart)
		}
		ids[r.DayPart][r.ID] = true
	}
	out := make([]CountPoint, 0, len(ids))
	emitted := map[string]bool{}
	for _, part := range core.DayPartOrder {
		if set, ok := ids[part]; ok {
			out = append(out, CountPoint{Label: part, Count: len(set)})
			emitted[part] = true
		}
	}
	for _, part := range firstSeen {
		if !emitted[part] {
			out = append(out, CountPoint{Label: part, Count: len(ids[part])})
		}
	}
	return out
}

// TopProducts sums revenue per product type, descending, truncated to the
// ten largest.
func TopProducts(rows []core.Row) []Point {
	pts := sumBy(rows, func(r core.Row) string { return r.Product })
	sort.SliceStable(pts, func(i, j int) bool {
		if !pts[i].Value.Equal(pts[j].Value) {
			return pts[i].Value.GreaterThan(pts[j].Value)
		}
		return pts[i].Label < pts[j].Label
	})
	if len(pts) > 10 {
		pts = pts[:10]
	}
	return pts
}

// RevenueByDayPart sums revenue per day part in the fixed order. All five
// canonical buckets are present, zero when unobserved, so bar charts keep a
// stable axis across filter changes.
func RevenueByDayPart(rows []core.Row) []Point {
	return canonical(sumBy(rows, func(r core.Row) string { return r.DayPart }), core.DayPartOrder, true)
}

// RevenueHeatmap builds the full 7x24 matrix; absent combinations are zero.
// Unknown weekday strings get extra rows appended after Sunday.
func RevenueHeatmap(rows []core.Row) Heatmap {
	days := append([]string(nil), core.WeekdayOrder...)
	index := map[string]int{}
	for i, d := range days {
		index[d] = i
	}
	for _, r := range rows {
		if _, ok := index[r.DayOfWeek]; !ok {
			index[r.DayOfWeek] = len(days)
			days = append(days, r.DayOfWeek)
		}
	}

	hours := make([]int, 24)
	values := make([][]decimal.Decimal, len(days))
	for i := range values {
		values[i] = make([]decimal.Decimal, 24)
		for h := range values[i] {
			values[i][h] = decimal.Zero
		}
	}
	for h := range hours {
		hours[h] = h
	}
	for _, r := range rows {
		if r.Hour < 0 || r.Hour > 23 {
			continue
		}
		i := index[r.DayOfWeek]
		values[i][r.Hour] = values[i][r.Hour].Add(r.TotalSales)
	}
	return Heatmap{Days: days, Hours: hours, Values: values}
}

func sumBy(rows []core.Row, key func(core.Row) string) []Point {
	totals := map[string]decimal.Decimal{}
	order := []string{}
	for _, r := range rows {
		k := key(r)
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] = totals[k].Add(r.TotalSales)
	}
	pts := make([]Point, 0, len(order))
	for _, k := range order {
		pts = append(pts, Point{Label: k, Value: totals[k]})
	}
	return pts
}

// canonical reorders points into the given fixed order. When fill is set,
// unobserved canonical labels are emitted with zero; observed labels outside
// the order are appended in first-observed order.
func canonical(pts []Point, order []string, fill bool) []Point {
	byLabel := map[string]Point{}
	for _, p := range pts {
		byLabel[p.Label] = p
	}
	out := make([]Point, 0, len(order))
	emitted := map[string]bool{}
	for _, label := range order {
		if p, ok := byLabel[label]; ok {
			out = append(out, p)
			emitted[label] = true
		} else if fill {
			out = append(out, Point{Label: label, Value: decimal.Zero})
			emitted[label] = true
		}
	}
	for _, p := range pts {
		if !emitted[p.Label] {
			out = append(out, p)
		}
	}
	return out
}

func hourLabel(h int) string {
	return strconv.Itoa(h)
}
