package renderer

import (
	"fmt"
	"slices"

	"github.com/etnz/cryptofolio"
)

// Dashboard is the view of a cycle report.
type Dashboard struct {
	CycleID     string
	LastUpdate  string
	Fallback    bool
	Total       cryptofolio.Money
	Assets      []AssetRow
	Degraded    []DegradedRow
	Zakat       ZakatView
	SkippedRows int
}

type AssetRow struct {
	Asset     string
	Value     cryptofolio.Money
	Share     cryptofolio.Percent
	Price     string
	MarketCap string
	Change    string // over 24h, "N/A" if unknown.
}

type DegradedRow struct {
	Asset  string
	Reason string
}

type ZakatView struct {
	Status       cryptofolio.Status
	Message      string
	Amount       cryptofolio.Money
	GoldPrice    cryptofolio.Money
	Nisab        cryptofolio.Money
	Days         int
	DaysUntilDue int
	Crossing     string // empty if the total never was below the nisab.
}

// NewDashboard builds the view of r. Assets are sorted by decreasing value.
func NewDashboard(r *cryptofolio.Report) *Dashboard {
	d := &Dashboard{
		CycleID:     r.CycleID,
		LastUpdate:  r.LastUpdate.Format(cryptofolio.TimeLayout),
		Fallback:    r.Fallback(),
		Total:       cryptofolio.USD(r.Total()),
		SkippedRows: len(r.RowErrors),
	}
	total := r.Total()
	for _, p := range r.Snapshot.Positions {
		row := AssetRow{
			Asset:     p.Asset,
			Value:     cryptofolio.USD(p.Value),
			Price:     price(p.Price),
			MarketCap: p.MarketCap.Compact(),
			Change:    "N/A",
		}
		row.Share = cryptofolio.Share(p.Value, total)
		if c, ok := r.Evolution[p.Asset]; ok {
			row.Change = c.SignedString()
		}
		d.Assets = append(d.Assets, row)
		if p.IsDegraded() {
			d.Degraded = append(d.Degraded, DegradedRow{Asset: p.Asset, Reason: p.Err.Error()})
		}
	}
	slices.SortStableFunc(d.Assets, func(a, b AssetRow) int { return b.Value.Decimal().Cmp(a.Value.Decimal()) })

	z := r.Zakat
	d.Zakat = ZakatView{
		Status:       z.Status,
		Message:      z.Status.Message(),
		Amount:       z.Amount,
		GoldPrice:    cryptofolio.USD(z.GoldPrice),
		Nisab:        cryptofolio.USD(z.Nisab),
		Days:         z.Days,
		DaysUntilDue: z.DaysUntilDue(),
	}
	if !r.Crossing.IsZero() {
		d.Zakat.Crossing = r.Crossing.Format(cryptofolio.TimeLayout)
	}
	return d
}

// price formats a unit price, small prices keep more digits.
func price(f cryptofolio.Figure) string {
	v, ok := f.Value()
	switch {
	case !ok:
		return "N/A"
	case v >= 1:
		return cryptofolio.USD(v).String()
	default:
		return fmt.Sprintf("$%.4f", v)
	}
}

// RenderDashboard renders the report to markdown.
func RenderDashboard(r *cryptofolio.Report) string {
	partials := map[string]string{
		"dashboard_title":  "dashboard_title.md",
		"dashboard_assets": "dashboard_assets.md",
		"dashboard_zakat":  "dashboard_zakat.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, NewDashboard(r))
}
