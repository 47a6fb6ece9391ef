package strategy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCard   = errors.New("invalid card number")
	ErrInvalidExpiry = errors.New("invalid or past card expiry, expected MM/YY")
	ErrInvalidCVV    = errors.New("invalid CVV")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// SimulatedCardStrategy validates the card form the way the checkout modal
// does and fabricates an authorization reference. It is the only strategy in
// scope; payment here is an input gate, not a financial integration.
type SimulatedCardStrategy struct {
	now func() time.Time
}

func NewSimulatedCardStrategy() *SimulatedCardStrategy {
	return &SimulatedCardStrategy{now: time.Now}
}

// NewSimulatedCardStrategyWithClock injects the clock for tests.
func NewSimulatedCardStrategyWithClock(now func() time.Time) *SimulatedCardStrategy {
	return &SimulatedCardStrategy{now: now}
}

func (s *SimulatedCardStrategy) Authorize(card CardInput, amount float64) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	number := strings.ReplaceAll(strings.ReplaceAll(card.Number, " ", ""), "-", "")
	if len(number) < 13 || len(number) > 19 || !luhnValid(number) {
		return "", ErrInvalidCard
	}

	if !expiryValid(card.Expiry, s.now()) {
		return "", ErrInvalidExpiry
	}

	if len(card.CVV) < 3 || len(card.CVV) > 4 || !allDigits(card.CVV) {
		return "", ErrInvalidCVV
	}

	ref := fmt.Sprintf("SIM-%s-%s", s.now().Format("20060102150405"), uuid.New().String()[:8])
	return ref, nil
}

func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func expiryValid(expiry string, now time.Time) bool {
	t, err := time.Parse("01/06", expiry)
	if err != nil {
		return false
	}
	// Valid through the last day of the expiry month.
	endOfMonth := t.AddDate(0, 1, 0)
	return now.Before(endOfMonth)
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
