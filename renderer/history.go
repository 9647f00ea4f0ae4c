package renderer

import (
	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/date"
)

// History is the view of the portfolio closes over a range.
type History struct {
	Range  date.Range
	Period date.Period
	Rows   []HistoryRow
}

type HistoryRow struct {
	Label  string
	Close  cryptofolio.Money
	Change string // relative to the previous row.
}

// NewHistory builds the view of closes, in chronological order.
func NewHistory(r date.Range, p date.Period, closes []cryptofolio.Close) *History {
	h := &History{Range: r, Period: p}
	for i, c := range closes {
		row := HistoryRow{Label: label(c.Period, p), Close: cryptofolio.USD(c.Value), Change: "-"}
		if i > 0 {
			if p, ok := cryptofolio.Change(closes[i-1].Value, c.Value); ok {
				row.Change = p.SignedString()
			}
		}
		h.Rows = append(h.Rows, row)
	}
	return h
}

func label(r date.Range, p date.Period) string {
	switch p {
	case date.Daily:
		return r.From.String()
	case date.Monthly:
		return r.From.Format("2006-01")
	case date.Yearly:
		return r.From.Format("2006")
	default:
		return r.String()
	}
}

// RenderHistory renders the closes to markdown.
func RenderHistory(r date.Range, p date.Period, closes []cryptofolio.Close) string {
	return renderTemplate("history", "history.md", nil, NewHistory(r, p, closes))
}
