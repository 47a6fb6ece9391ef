package model

import "time"

// Bucket is the display classification of a coupon.
type Bucket string

const (
	BucketDisponible Bucket = StatusDisponible
	BucketCanjeado   Bucket = StatusCanjeado
	BucketVencido    Bucket = StatusVencido
)

// Classify maps stored fields plus "now" to a display bucket. A redeemed
// status always wins over dates. Otherwise a coupon whose expiration
// calendar day (UTC) is strictly before today's is expired, regardless of
// what the stored status says. Pure function, never mutates stored state.
func Classify(c *Coupon, now time.Time) Bucket {
	if c.Status == StatusCanjeado {
		return BucketCanjeado
	}

	if dayUTC(c.ExpiresAt).Before(dayUTC(now)) || c.Status == StatusVencido {
		return BucketVencido
	}

	return BucketDisponible
}

func dayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
