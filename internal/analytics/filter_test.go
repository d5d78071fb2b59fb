package analytics

import (
	"reflect"
	"testing"

	"brewboard/internal/core"
)

func sampleRows() []core.Row {
	return core.Enrich([]core.Transaction{
		mustTx(1, core.NewDate(2023, 1, 5), "08:00:00", 2, "3.50", "A", "Latte"),
		mustTx(2, core.NewDate(2023, 1, 5), "13:00:00", 1, "5.00", "B", "Mocha"),
		mustTx(3, core.NewDate(2023, 2, 10), "19:30:00", 3, "2.00", "A", "Tea"),
	})
}

func mustTx(id int64, date core.Date, clock string, qty int64, price, store, product string) core.Transaction {
	c, err := core.ParseClock(clock)
	if err != nil {
		panic(err)
	}
	p, err := core.ParsePrice(price)
	if err != nil {
		panic(err)
	}
	return core.Transaction{ID: id, Date: date, Time: c, Qty: qty, UnitPrice: p, Store: store, Product: product}
}

func TestApplySentinelsReturnEverything(t *testing.T) {
	rows := sampleRows()
	got := Apply(rows, Filter{Store: AllStores, Month: AllMonths})
	if !reflect.DeepEqual(got, rows) {
		t.Fatalf("expected identity view, got %d rows", len(got))
	}
	// Zero-value filter normalizes to the sentinels.
	if got2 := Apply(rows, Filter{}); !reflect.DeepEqual(got2, rows) {
		t.Fatalf("zero filter should behave like the sentinels")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	rows := sampleRows()
	f := Filter{Store: "A", Month: "2023-01"}
	once := Apply(rows, f)
	twice := Apply(once, f)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filtering twice changed the view")
	}
}

func TestApplyConjunction(t *testing.T) {
	rows := sampleRows()
	got := Apply(rows, Filter{Store: "A", Month: "2023-01"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only row 1, got %+v", got)
	}
}

func TestApplyUnknownStoreYieldsEmpty(t *testing.T) {
	got := Apply(sampleRows(), Filter{Store: "C"})
	if len(got) != 0 {
		t.Fatalf("expected empty view, got %d rows", len(got))
	}
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	rows := sampleRows()
	view := Apply(rows, Filter{})
	view[0].Store = "mutated"
	if rows[0].Store == "mutated" {
		t.Fatalf("view shares backing array with the enriched table")
	}
}

func TestOptions(t *testing.T) {
	rows := sampleRows()
	stores := StoreOptions(rows)
	if !reflect.DeepEqual(stores, []string{AllStores, "A", "B"}) {
		t.Fatalf("store options: %v", stores)
	}
	months := MonthOptions(rows)
	if !reflect.DeepEqual(months, []string{AllMonths, "2023-01", "2023-02"}) {
		t.Fatalf("month options: %v", months)
	}
}

func TestFilterKey(t *testing.T) {
	if (Filter{}).Key() != (Filter{Store: AllStores, Month: AllMonths}).Key() {
		t.Fatalf("zero filter and sentinel filter must share a cache key")
	}
	if (Filter{Store: "A"}).Key() == (Filter{Store: "B"}).Key() {
		t.Fatalf("distinct selections must not collide")
	}
}
