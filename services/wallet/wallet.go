package wallet

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Call is a single contract call to be sent from the user's smart wallet.
type Call struct {
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value"`
}

// UIOptions controls how the relay surfaces the transaction to the user.
type UIOptions struct {
	ShowWalletUIs bool `json:"showWalletUis"`
}

// TransactionRequest is one batch of calls for a smart address on a chain.
type TransactionRequest struct {
	Address string    `json:"address"`
	ChainID int64     `json:"chainId"`
	Calls   []Call    `json:"calls"`
	UI      UIOptions `json:"uiOptions"`
}

// Sender submits a transaction on behalf of a smart wallet and returns the
// transaction hash.
type Sender interface {
	Send(ctx context.Context, req TransactionRequest) (string, error)
}

// ApproveCallData encodes approve(address,uint256) calldata: the 4-byte
// Keccak-256 selector followed by the spender and amount as 32-byte words.
func ApproveCallData(spender string, amount *big.Int) (string, error) {
	addr, err := addressWord(spender)
	if err != nil {
		return "", err
	}
	if amount == nil || amount.Sign() < 0 {
		return "", fmt.Errorf("invalid approve amount")
	}

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte("approve(address,uint256)"))
	selector := h.Sum(nil)[:4]

	var amountWord [32]byte
	amount.FillBytes(amountWord[:])

	data := make([]byte, 0, 4+32+32)
	data = append(data, selector...)
	data = append(data, addr[:]...)
	data = append(data, amountWord[:]...)
	return "0x" + hex.EncodeToString(data), nil
}

func addressWord(address string) ([32]byte, error) {
	var word [32]byte
	raw := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	if len(raw) != 40 {
		return word, fmt.Errorf("invalid address %q", address)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return word, fmt.Errorf("invalid address %q", address)
	}
	copy(word[12:], b)
	return word, nil
}

// ExplorerTxURL links a submitted transaction on the Base Sepolia explorer.
func ExplorerTxURL(txHash string) string {
	return "https://base-sepolia.blockscout.com/tx/" + txHash
}
