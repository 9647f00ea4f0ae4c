package agent

import (
	"context"
	"fmt"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/date"
	"github.com/etnz/cryptofolio/docs"
	"github.com/etnz/cryptofolio/renderer"
	"google.golang.org/genai"
)

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user holds a crypto portfolio and pays zakat on it. He comes to know how his
			assets are doing, and when and how much zakat is due.

			Devise a plan of questions to ask to each expert and come up with the best response.
			Answer in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewScholar returns the expert in zakat rulings.
func NewScholar() *Expert {
	return &Expert{
		Name: "Scholar",
		Description: `This is a scholar of islamic finance.
		He knows the rulings about zakat on money and crypto assets, the nisab, the hawl,
		and how they are computed. Ask the Scholar whenever you need grounded religious or market information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a scholar of islamic finance. You Leverage Google Search to
			ground your assertions, and quote your sources.
			Here is how the application computes zakat:

			` + must(docs.GetTopic("zakat"))}}},
		},
	}
}

// NewTreasurer returns the expert reading the user's portfolio through t.
func NewTreasurer(t *cryptofolio.Tracker) *Expert {
	lib := Treasury(t)
	return &Expert{
		Name: "Treasurer",
		Description: `This is the Treasurer. He is in charge of the user's crypto portfolio.
		He knows the value of every asset, the history of the portfolio total and the zakat status.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the treasurer of the user's crypto portfolio.
				Use the available tools to get information about:
				  - the assets, their value, price and 24h change
				  - the history of the portfolio total
				  - the zakat status, amount and days until it is due
				Values are in USD.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Treasury returns the functions reading the portfolio tracked by t.
// They never fetch: figures come from the recorded history.
func Treasury(t *cryptofolio.Tracker) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "portfolio_status",
				Description: "Returns the latest dashboard of the portfolio: total, assets, 24h changes and zakat.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown dashboard.",
				},
			},
			Func: func(ctx context.Context, _ map[string]any) (any, error) {
				r, err := t.Inspect(ctx)
				if err != nil {
					return nil, err
				}
				return renderer.RenderDashboard(r), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "portfolio_history",
				Description: "Returns the daily closing totals of the portfolio over a period.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"period": {
							Type:        genai.TypeString,
							Description: "One of day, week, month, quarter, year. Default is month.",
						},
						"date": {
							Type:        genai.TypeString,
							Description: "A day in the period. Default is today.\n" + must(docs.GetTopic("dates")),
						},
					},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of closes.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (any, error) {
				p, d, err := parsePeriod(args)
				if err != nil {
					return nil, err
				}
				h, _, err := t.Store.Load()
				if err != nil {
					return nil, err
				}
				r := date.NewRange(d, p)
				return renderer.RenderHistory(r, date.Daily, h.Closes(r, date.Daily)), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "zakat_status",
				Description: "Returns the zakat status: gold price, nisab, amount, days above the nisab and days until due.",
				Response: &genai.Schema{
					Type: genai.TypeObject,
				},
			},
			Func: func(ctx context.Context, _ map[string]any) (any, error) {
				r, err := t.Inspect(ctx)
				if err != nil {
					return nil, err
				}
				z := renderer.NewDashboard(r).Zakat
				return map[string]any{
					"status":         z.Status.String(),
					"message":        z.Message,
					"amount":         z.Amount.String(),
					"gold_price":     z.GoldPrice.String(),
					"nisab":          z.Nisab.String(),
					"days":           z.Days,
					"days_until_due": z.DaysUntilDue,
					"total":          cryptofolio.USD(r.Total()).String(),
				}, nil
			},
		},
	}
}

func parsePeriod(args map[string]any) (date.Period, date.Date, error) {
	p, d := date.Monthly, date.Today()
	if v, ok := args["period"]; ok {
		s, ok := v.(string)
		if !ok {
			return p, d, fmt.Errorf("invalid period, got %T, expected string", v)
		}
		var err error
		if p, err = date.ParsePeriod(s); err != nil {
			return p, d, err
		}
	}
	if v, ok := args["date"]; ok {
		s, ok := v.(string)
		if !ok {
			return p, d, fmt.Errorf("invalid date, got %T, expected string", v)
		}
		var err error
		if d, err = date.Parse(s); err != nil {
			return p, d, err
		}
	}
	return p, d, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
