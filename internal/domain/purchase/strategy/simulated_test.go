package strategy

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newStrategy() *SimulatedCardStrategy {
	return NewSimulatedCardStrategyWithClock(func() time.Time { return testNow })
}

func card() CardInput {
	return CardInput{
		Number: "4242424242424242",
		Holder: "Maria Lopez",
		Expiry: "12/27",
		CVV:    "123",
	}
}

func TestAuthorizeValidCard(t *testing.T) {
	ref, err := newStrategy().Authorize(card(), 9.99)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "SIM-"))
}

func TestAuthorizeAcceptsSpacedAndDashedNumbers(t *testing.T) {
	c := card()
	c.Number = "4242 4242-4242 4242"

	_, err := newStrategy().Authorize(c, 5)

	assert.NoError(t, err)
}

func TestAuthorizeRejectsLuhnFailure(t *testing.T) {
	c := card()
	c.Number = "4242424242424241"

	_, err := newStrategy().Authorize(c, 5)

	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestAuthorizeRejectsShortNumber(t *testing.T) {
	c := card()
	c.Number = "42424242"

	_, err := newStrategy().Authorize(c, 5)

	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestAuthorizeExpiry(t *testing.T) {
	cases := []struct {
		name    string
		expiry  string
		wantErr bool
	}{
		{"future month", "12/27", false},
		{"current month still valid", "06/25", false},
		{"previous month expired", "05/25", true},
		{"past year", "12/24", true},
		{"garbage", "13-25", true},
		{"empty", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := card()
			c.Expiry = tc.expiry

			_, err := newStrategy().Authorize(c, 5)

			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidExpiry)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeRejectsBadCVV(t *testing.T) {
	for _, cvv := range []string{"", "12", "12345", "12a"} {
		c := card()
		c.CVV = cvv

		_, err := newStrategy().Authorize(c, 5)

		assert.ErrorIs(t, err, ErrInvalidCVV, "cvv %q", cvv)
	}
}

func TestAuthorizeRejectsNonPositiveAmount(t *testing.T) {
	_, err := newStrategy().Authorize(card(), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = newStrategy().Authorize(card(), -3)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
