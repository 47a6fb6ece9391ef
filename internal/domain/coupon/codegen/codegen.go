// Package codegen produces human-readable coupon codes of the form
// PREFIX-NNNNNNN. Uniqueness is probabilistic only; the store's unique
// constraint on the code column is the real guarantee, and the purchase
// coordinator retries on collision.
package codegen

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	prefixLen  = 3
	filler     = 'X'
	numberSpan = 10000000 // 7-digit numeric part, [0, 9999999]
)

// Generator draws codes from an injectable random source.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates a time-seeded generator.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a generator over a specific source, for tests.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Prefix derives the three-letter code prefix from a merchant name: first
// three characters, uppercased, non-letters replaced with the filler, padded
// with the filler when the name is short. "7-Eleven" becomes "XXE".
func Prefix(merchantName string) string {
	if merchantName == "" {
		merchantName = "CUP"
	}

	runes := []rune(strings.ToUpper(merchantName))
	if len(runes) > prefixLen {
		runes = runes[:prefixLen]
	}

	var b strings.Builder
	for _, r := range runes {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		} else {
			b.WriteByte(filler)
		}
	}
	for b.Len() < prefixLen {
		b.WriteByte(filler)
	}
	return b.String()
}

// Generate returns a fresh candidate code for the merchant.
func (g *Generator) Generate(merchantName string) string {
	g.mu.Lock()
	n := g.rnd.Intn(numberSpan)
	g.mu.Unlock()

	return fmt.Sprintf("%s-%07d", Prefix(merchantName), n)
}
