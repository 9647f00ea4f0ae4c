package assets

import (
	"context"
	"log"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/binance"
	"github.com/shopspring/decimal"
)

// Spot reads a spot account and its prices.
type Spot interface {
	Balances(ctx context.Context) ([]binance.Balance, error)
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// QuoteAsset is the asset every spot balance is priced in.
const QuoteAsset = "USDT"

var stablecoins = map[string]bool{"USDT": true, "USDC": true, "FDUSD": true, "DAI": true}

// Binance is the whole spot account of a Binance user.
type Binance struct {
	Account Spot
}

func (b *Binance) Asset() string    { return "BINANCE" }
func (b *Binance) Provider() string { return "binance" }

// Fetch values every balance at its last price against QuoteAsset. A balance
// without a price is worth nothing.
func (b *Binance) Fetch(ctx context.Context) (cryptofolio.Position, error) {
	balances, err := b.Account.Balances(ctx)
	if err != nil {
		return cryptofolio.Position{}, err
	}
	sum := decimal.Zero
	for _, bal := range balances {
		if stablecoins[bal.Asset] {
			sum = sum.Add(bal.Total())
			continue
		}
		price, err := b.Account.Price(ctx, bal.Asset+QuoteAsset)
		if err != nil {
			log.Printf("binance %s ignored: %v", bal.Asset, err)
			continue
		}
		sum = sum.Add(bal.Total().Mul(price))
	}
	return position(sum, 1, cryptofolio.NA), nil
}
