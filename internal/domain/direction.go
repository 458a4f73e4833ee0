package domain

import (
	"fmt"
	"strings"
)

// Direction side of an order.
type Direction string

const (
	// DirectionBuy buy order.
	DirectionBuy Direction = "BUY"
	// DirectionSell sell order.
	DirectionSell Direction = "SELL"
)

// ParseDirection parses a case-insensitive order direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid direction %q, expected BUY or SELL", s)
	}

	return d, nil
}

// String returns the string representation.
func (d Direction) String() string {
	return string(d)
}

// IsValid checks if the Direction value is valid.
func (d Direction) IsValid() bool {
	return d == DirectionBuy || d == DirectionSell
}

// ListState selects open or closed entries in listing endpoints.
type ListState string

const (
	ListOpen   ListState = "open"
	ListClosed ListState = "closed"
)

// ParseListState parses "open" or "closed".
func ParseListState(s string) (ListState, error) {
	switch ListState(strings.ToLower(strings.TrimSpace(s))) {
	case ListOpen:
		return ListOpen, nil
	case ListClosed:
		return ListClosed, nil
	default:
		return "", fmt.Errorf("invalid state %q, expected open or closed", s)
	}
}
