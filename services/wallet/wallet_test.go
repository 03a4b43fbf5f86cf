package wallet

import (
	"math/big"
	"strings"
	"testing"
)

func TestApproveCallData(t *testing.T) {
	got, err := ApproveCallData("0x1111111111111111111111111111111111111111", big.NewInt(2050))
	if err != nil {
		t.Fatalf("ApproveCallData: %v", err)
	}

	want := "0x095ea7b3" +
		strings.Repeat("0", 24) + strings.Repeat("1", 40) +
		strings.Repeat("0", 61) + "802"
	if got != want {
		t.Errorf("calldata = %s, want %s", got, want)
	}

	// 0x + selector + two 32-byte words
	if len(got) != 2+8+64+64 {
		t.Errorf("calldata length = %d", len(got))
	}
}

func TestApproveCallDataSelector(t *testing.T) {
	got, err := ApproveCallData("0xAbCd00000000000000000000000000000000Ef12", big.NewInt(1))
	if err != nil {
		t.Fatalf("ApproveCallData: %v", err)
	}
	if !strings.HasPrefix(got, "0x095ea7b3") {
		t.Errorf("selector prefix = %s", got[:10])
	}
	if !strings.Contains(got, "abcd") {
		t.Error("address should be hex-encoded lowercase in the first word")
	}
}

func TestApproveCallDataRejectsBadInput(t *testing.T) {
	if _, err := ApproveCallData("0x1234", big.NewInt(1)); err == nil {
		t.Error("short address should be rejected")
	}
	if _, err := ApproveCallData("not-an-address-not-an-address-not-an-addr", big.NewInt(1)); err == nil {
		t.Error("non-hex address should be rejected")
	}
	if _, err := ApproveCallData("0x1111111111111111111111111111111111111111", big.NewInt(-5)); err == nil {
		t.Error("negative amount should be rejected")
	}
	if _, err := ApproveCallData("0x1111111111111111111111111111111111111111", nil); err == nil {
		t.Error("nil amount should be rejected")
	}
}

func TestExplorerTxURL(t *testing.T) {
	got := ExplorerTxURL("0xdeadbeef")
	if got != "https://base-sepolia.blockscout.com/tx/0xdeadbeef" {
		t.Errorf("url = %s", got)
	}
}
