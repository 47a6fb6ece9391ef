package export

import (
	"testing"
	"time"

	couponModel "github.com/laujml/la-cuponera/internal/domain/coupon/model"
	offerModel "github.com/laujml/la-cuponera/internal/domain/offer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printableCoupon() *couponModel.Coupon {
	return &couponModel.Coupon{
		Code:        "PUP-0012345",
		PricePaid:   5,
		PurchasedAt: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
		ExpiresAt:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		Offer: &offerModel.Offer{
			Title:           "2x1 en pupusas",
			MerchantName:    "Pupuseria La Bendicion",
			MerchantAddress: "Av. Olimpica, San Salvador",
			DiscountPercent: 50,
			RegularPrice:    10,
			Terms:           "Valido solo en sucursal central.",
		},
	}
}

func TestRenderPrintable(t *testing.T) {
	doc, err := RenderPrintable(printableCoupon())
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "PUP-0012345")
	assert.Contains(t, html, "2x1 en pupusas")
	assert.Contains(t, html, "Pupuseria La Bendicion")
	assert.Contains(t, html, "Av. Olimpica, San Salvador")
	assert.Contains(t, html, "$10.00")
	assert.Contains(t, html, "$5.00")
	assert.Contains(t, html, "15/06/2025")
	assert.Contains(t, html, "15/07/2025")
	assert.Contains(t, html, "Valido solo en sucursal central.")
	assert.Contains(t, html, "50%")
}

func TestRenderPrintableWithoutOffer(t *testing.T) {
	c := printableCoupon()
	c.Offer = nil

	doc, err := RenderPrintable(c)
	require.NoError(t, err)

	assert.Contains(t, string(doc), "PUP-0012345")
}

func TestRenderPrintableEscapesMarkup(t *testing.T) {
	c := printableCoupon()
	c.Offer.Terms = "<script>alert('x')</script>"

	doc, err := RenderPrintable(c)
	require.NoError(t, err)

	assert.NotContains(t, string(doc), "<script>alert")
}
