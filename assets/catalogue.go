package assets

import (
	"context"
	"log"
	"net/http"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/binance"
	"github.com/etnz/cryptofolio/coingecko"
	"github.com/etnz/cryptofolio/coinmarketcap"
	"github.com/etnz/cryptofolio/config"
	"github.com/etnz/cryptofolio/etherscan"
	"github.com/etnz/cryptofolio/ethrpc"
	"github.com/etnz/cryptofolio/goldapi"
	"github.com/etnz/cryptofolio/hyperliquid"
	"github.com/etnz/cryptofolio/xrpscan"
)

// Tracked tokens of the Ethereum wallet.
var (
	FET  = Contract{Symbol: "FET", Address: "0xaea46A60368A7bD060eec7DF8CBa43b7EF41Ad85", Decimals: 18}
	GALA = Contract{Symbol: "GALA", Address: "0xd1d2Eb1B1e90B638588728b4130137D262C87cae", Decimals: 8}
	ESX  = Contract{Symbol: "ESX", Address: "0xFC05987bd2be489ACCF0f509E44B0145d68240f7", Decimals: 18}
	USDC = Contract{Symbol: "USDC", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6}
	USDT = Contract{Symbol: "USDT", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6}
)

// Catalogue is the list of tracked assets and their gold reference.
type Catalogue struct {
	Sources []cryptofolio.Source
	Gold    cryptofolio.GoldSource
	close   func()
}

// Close releases the connections of the catalogue.
func (c *Catalogue) Close() {
	if c.close != nil {
		c.close()
	}
}

// New builds the catalogue described by cfg. Every http call goes through client.
func New(ctx context.Context, cfg *config.Config, client *http.Client) (*Catalogue, error) {
	c := &Catalogue{}

	var (
		balances Balances
		via      string
	)
	if cfg.Ethereum.RPCURL != "" {
		node, err := ethrpc.Dial(ctx, cfg.Ethereum.RPCURL)
		if err != nil {
			return nil, err
		}
		balances, via, c.close = node, "ethrpc", node.Close
	} else {
		balances, via = etherscan.New(cfg.Ethereum.EtherscanKey, client), "etherscan"
	}
	quotes := Quotes{
		Primary: coinmarketcap.New(cfg.Quotes.CMCKey, client),
		Backup:  coingecko.New(client),
	}
	wallet := cfg.Ethereum.Wallet

	c.Sources = []cryptofolio.Source{
		&Native{Symbol: "ETH", Wallet: wallet, Balances: balances, Quotes: quotes, Via: via},
	}
	for _, t := range []Contract{FET, GALA, ESX} {
		c.Sources = append(c.Sources, &Token{
			Symbol:   t.Symbol,
			Wallet:   wallet,
			Contract: t.Address,
			Decimals: t.Decimals,
			Balances: balances,
			Quotes:   quotes,
			Via:      via,
		})
	}
	c.Sources = append(c.Sources,
		&Stable{Symbol: "USD", Wallet: wallet, Contracts: []Contract{USDC, USDT}, Balances: balances, Via: via},
		&XRP{Account: cfg.XRP.Wallet, Ledger: xrpscan.New(client), Quotes: quotes},
		&Active{User: wallet, Exchange: hyperliquid.New(client)},
	)
	if cfg.Binance.APIKey != "" && cfg.Binance.Secret != "" {
		c.Sources = append(c.Sources, &Binance{Account: binance.New(cfg.Binance.APIKey, cfg.Binance.Secret, client)})
	}

	c.Gold = cryptofolio.StaticGold(cfg.Gold.PriceGram)
	if cfg.Gold.APIKey != "" {
		c.Gold = &Gold{Live: goldapi.New(cfg.Gold.APIKey, client), Static: cfg.Gold.PriceGram}
	}
	return c, nil
}

// Gold is a live gold price that falls back to a static one.
type Gold struct {
	Live   cryptofolio.GoldSource
	Static float64
}

func (g *Gold) PricePerGram(ctx context.Context) (float64, error) {
	p, err := g.Live.PricePerGram(ctx)
	if err != nil {
		log.Printf("live gold price failed, using %v: %v", g.Static, err)
		return g.Static, nil
	}
	return p, nil
}
