// Package assets implements the portfolio sources: one Source per tracked asset,
// each combining a balance reader and a quote provider.
package assets

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/etnz/cryptofolio"
	"github.com/shopspring/decimal"
)

// Balances reads Ethereum balances.
type Balances interface {
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
	TokenBalance(ctx context.Context, address, contract string, decimals int32) (decimal.Decimal, error)
}

// Quoter provides the USD price and market cap of a symbol.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (float64, cryptofolio.Figure, error)
}

// Quotes asks Primary, then Backup if Primary fails.
type Quotes struct {
	Primary Quoter
	Backup  Quoter // optional
}

func (q Quotes) Quote(ctx context.Context, symbol string) (float64, cryptofolio.Figure, error) {
	price, mc, err := q.Primary.Quote(ctx, symbol)
	if err == nil || q.Backup == nil {
		return price, mc, err
	}
	log.Printf("%s quote failed, trying backup: %v", symbol, err)
	price, mc, berr := q.Backup.Quote(ctx, symbol)
	if berr != nil {
		return 0, cryptofolio.NA, fmt.Errorf("%w, backup: %w", err, berr)
	}
	return price, mc, nil
}

// position values amount at price.
func position(amount decimal.Decimal, price float64, mc cryptofolio.Figure) cryptofolio.Position {
	value := amount.Mul(decimal.NewFromFloat(price))
	return cryptofolio.Position{
		Value:     value.InexactFloat64(),
		Price:     cryptofolio.Known(price),
		MarketCap: mc,
	}
}

// Native is the ether held by a wallet.
type Native struct {
	Symbol   string
	Wallet   string
	Balances Balances
	Quotes   Quoter
	Via      string // provider of the balances
}

func (n *Native) Asset() string    { return n.Symbol }
func (n *Native) Provider() string { return n.Via }

func (n *Native) Fetch(ctx context.Context) (cryptofolio.Position, error) {
	price, mc, err := n.Quotes.Quote(ctx, n.Symbol)
	if err != nil {
		return cryptofolio.Position{}, err
	}
	amount, err := n.Balances.Balance(ctx, n.Wallet)
	if err != nil {
		return cryptofolio.Position{}, err
	}
	return position(amount, price, mc), nil
}

// Token is an ERC-20 token held by a wallet.
type Token struct {
	Symbol   string
	Wallet   string
	Contract string
	Decimals int32
	Balances Balances
	Quotes   Quoter
	Via      string
}

func (t *Token) Asset() string    { return t.Symbol }
func (t *Token) Provider() string { return t.Via }

func (t *Token) Fetch(ctx context.Context) (cryptofolio.Position, error) {
	price, mc, err := t.Quotes.Quote(ctx, t.Symbol)
	if err != nil {
		return cryptofolio.Position{}, err
	}
	amount, err := t.Balances.TokenBalance(ctx, t.Wallet, t.Contract, t.Decimals)
	if err != nil {
		return cryptofolio.Position{}, err
	}
	return position(amount, price, mc), nil
}

// Contract is an ERC-20 token contract.
type Contract struct {
	Symbol   string
	Address  string
	Decimals int32
}

// Stable is the sum of dollar pegged tokens held by a wallet, valued at par.
// Contracts are read one after the other, Pacing apart.
type Stable struct {
	Symbol    string
	Wallet    string
	Contracts []Contract
	Balances  Balances
	Via       string
	Pacing    time.Duration // 0 means cryptofolio.DefaultPacing
}

func (s *Stable) Asset() string    { return s.Symbol }
func (s *Stable) Provider() string { return s.Via }

func (s *Stable) Fetch(ctx context.Context) (cryptofolio.Position, error) {
	pacing := s.Pacing
	if pacing <= 0 {
		pacing = cryptofolio.DefaultPacing
	}
	sum := decimal.Zero
	for i, c := range s.Contracts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return cryptofolio.Position{}, ctx.Err()
			case <-time.After(pacing):
			}
		}
		amount, err := s.Balances.TokenBalance(ctx, s.Wallet, c.Address, c.Decimals)
		if err != nil {
			return cryptofolio.Position{}, fmt.Errorf("%s: %w", c.Symbol, err)
		}
		sum = sum.Add(amount)
	}
	return position(sum, 1, cryptofolio.NA), nil
}

// XRPLedger reads XRP balances.
type XRPLedger interface {
	Balance(ctx context.Context, account string) (decimal.Decimal, error)
}

// XRP is the XRP held by an account of the XRP Ledger.
type XRP struct {
	Account string
	Ledger  XRPLedger
	Quotes  Quoter
}

func (x *XRP) Asset() string    { return "XRP" }
func (x *XRP) Provider() string { return "" }

func (x *XRP) Fetch(ctx context.Context) (cryptofolio.Position, error) {
	amount, err := x.Ledger.Balance(ctx, x.Account)
	if err != nil {
		return cryptofolio.Position{}, err
	}
	price, mc, err := x.Quotes.Quote(ctx, "XRP")
	if err != nil {
		return cryptofolio.Position{}, err
	}
	return position(amount, price, mc), nil
}

// Exchange reads the USD value of a derivatives account.
type Exchange interface {
	AccountValue(ctx context.Context, user string) (decimal.Decimal, error)
}

// Active is the value of a perpetuals account, already in USD.
type Active struct {
	User     string
	Exchange Exchange
}

func (a *Active) Asset() string    { return "ACTIVE" }
func (a *Active) Provider() string { return "" }

func (a *Active) Fetch(ctx context.Context) (cryptofolio.Position, error) {
	v, err := a.Exchange.AccountValue(ctx, a.User)
	if err != nil {
		return cryptofolio.Position{}, err
	}
	if v.IsNegative() {
		// a liquidated account is worth nothing.
		v = decimal.Zero
	}
	return position(v, 1, cryptofolio.NA), nil
}
