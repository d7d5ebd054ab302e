package common

import (
	"fmt"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// ParseAddress converts a hex string into a checked address. Zero-value
// addresses are accepted here; callers that need a non-zero address use
// IsZeroAddress.
func ParseAddress(addr string) (ethcommon.Address, error) {
	if len(strings.TrimPrefix(addr, "0x")) != AddressLength*2 {
		return ethcommon.Address{}, fmt.Errorf("invalid address length: %q", addr)
	}
	if !ethcommon.IsHexAddress(addr) {
		return ethcommon.Address{}, fmt.Errorf("invalid address: %q", addr)
	}
	return ethcommon.HexToAddress(addr), nil
}

// ParseAddresses converts a list of hex strings, rejecting duplicates.
func ParseAddresses(addrs []string) ([]ethcommon.Address, error) {
	parsed := make([]ethcommon.Address, 0, len(addrs))
	seen := make(map[ethcommon.Address]bool, len(addrs))
	for _, addr := range addrs {
		a, err := ParseAddress(addr)
		if err != nil {
			return nil, err
		}
		if seen[a] {
			return nil, fmt.Errorf("duplicate address: %q", addr)
		}
		seen[a] = true
		parsed = append(parsed, a)
	}
	return parsed, nil
}

// IsZeroAddress reports whether addr is the all-zero address.
func IsZeroAddress(addr ethcommon.Address) bool {
	return addr == ethcommon.HexToAddress(ZeroAddress)
}
