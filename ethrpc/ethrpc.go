// Package ethrpc reads Ethereum balances from a JSON-RPC node.
package ethrpc

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
)

// ERC20 ABI for balanceOf function
const erc20BalanceOfABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"type":"function"}]`

var erc20 = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc20BalanceOfABI))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// Client reads balances from an Ethereum node.
type Client struct {
	eth *ethclient.Client
}

// Dial connects to the node at rawurl.
func Dial(ctx context.Context, rawurl string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
	}
	return &Client{eth: eth}, nil
}

func (c *Client) Close() { c.eth.Close() }

func parseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("invalid address: %q", address)
	}
	return common.HexToAddress(address), nil
}

// Balance returns the ether balance of address at the latest block.
func (c *Client) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return decimal.Zero, err
	}
	wei, err := c.eth.BalanceAt(ctx, addr, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}
	return decimal.NewFromBigInt(wei, -18), nil
}

// TokenBalance returns the balance of an ERC-20 token held by address.
func (c *Client) TokenBalance(ctx context.Context, address, contract string, decimals int32) (decimal.Decimal, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return decimal.Zero, err
	}
	token, err := parseAddress(contract)
	if err != nil {
		return decimal.Zero, err
	}
	data, err := erc20.Pack("balanceOf", addr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to pack balanceOf call: %w", err)
	}
	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to call contract: %w", err)
	}
	// balanceOf returns a single uint256
	results, err := erc20.Unpack("balanceOf", result)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to unpack balance result: %w", err)
	}
	if len(results) == 0 {
		return decimal.Zero, fmt.Errorf("no results returned from balanceOf call")
	}
	balance, ok := results[0].(*big.Int)
	if !ok {
		return decimal.Zero, fmt.Errorf("failed to decode balance as *big.Int")
	}
	return decimal.NewFromBigInt(balance, -decimals), nil
}
