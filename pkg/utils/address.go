package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidWalletAddress accepts 0x-prefixed hex addresses. Standard 20-byte
// addresses are validated strictly; longer Sui-style 32-byte addresses are
// checked for hex shape.
func IsValidWalletAddress(address string) bool {
	if common.IsHexAddress(address) {
		return true
	}
	if !strings.HasPrefix(address, "0x") || len(address) != 66 {
		return false
	}
	for _, c := range address[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
