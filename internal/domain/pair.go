// Package domain defines core data structures shared by the exchange client and services.
package domain

import (
	"fmt"
	"strings"
)

// Pair market symbol in TARGET-BASE form, e.g. BTC-EUR.
type Pair struct {
	// Target currency acquired when buying the pair.
	Target string
	// Base currency that funds a buy.
	Base string
}

// ParsePair parses a TARGET-BASE market symbol.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, fmt.Errorf("invalid pair %q, expected TARGET-BASE (e.g. BTC-EUR)", s)
	}

	return Pair{Target: strings.ToUpper(parts[0]), Base: strings.ToUpper(parts[1])}, nil
}

// String returns the exchange market symbol.
func (p Pair) String() string {
	return fmt.Sprintf("%s-%s", p.Target, p.Base)
}

// Sides returns the currency received and the currency paid for the given direction.
// Buying BTC-EUR receives BTC and pays EUR; selling it receives EUR and pays BTC.
func (p Pair) Sides(d Direction) (target, base string) {
	if d == DirectionSell {
		return p.Base, p.Target
	}

	return p.Target, p.Base
}
