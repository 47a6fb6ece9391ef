// Package export renders a fully-populated coupon as a standalone printable
// HTML document. The browser's print dialog turns it into a PDF; no
// server-side PDF library is involved.
package export

import (
	"bytes"
	"html/template"

	"github.com/laujml/la-cuponera/internal/domain/coupon/model"
)

type printData struct {
	Code            string
	Title           string
	MerchantName    string
	MerchantAddress string
	DiscountPercent int
	RegularPrice    float64
	PricePaid       float64
	Savings         float64
	Terms           string
	PurchasedAt     string
	ExpiresAt       string
}

var printTemplate = template.Must(template.New("coupon").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8" />
  <title>Cupón - {{.Code}}</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: #f3f4f6; display: flex; justify-content: center; padding: 40px 20px; }
    .cupon { background: white; border-radius: 16px; overflow: hidden; width: 480px; box-shadow: 0 8px 32px rgba(0,0,0,0.12); }
    .header { background: linear-gradient(135deg, #f97316, #dc2626); color: white; padding: 24px; text-align: center; }
    .header h1 { font-size: 24px; font-weight: 800; letter-spacing: 1px; margin-bottom: 4px; }
    .descuento { font-size: 56px; font-weight: 900; line-height: 1; margin: 12px 0 4px; }
    .body { padding: 24px; }
    .oferta-titulo { font-size: 18px; font-weight: 700; color: #1f2937; margin-bottom: 6px; }
    .empresa { font-size: 14px; color: #6b7280; margin-bottom: 16px; }
    .codigo { background: #fef3c7; border: 2px dashed #f59e0b; border-radius: 8px; padding: 14px; text-align: center; font-size: 26px; font-weight: 800; letter-spacing: 3px; color: #92400e; margin-bottom: 16px; }
    .fila { display: flex; justify-content: space-between; font-size: 14px; padding: 6px 0; border-bottom: 1px solid #f3f4f6; }
    .fila .etiqueta { color: #6b7280; }
    .fila .valor { font-weight: 600; color: #1f2937; }
    .terminos { margin-top: 16px; font-size: 11px; color: #9ca3af; line-height: 1.5; }
    @media print { body { background: white; padding: 0; } .cupon { box-shadow: none; } }
  </style>
</head>
<body>
  <div class="cupon">
    <div class="header">
      <h1>LA CUPONERA</h1>
      <div class="descuento">{{.DiscountPercent}}%</div>
      <p>DE DESCUENTO</p>
    </div>
    <div class="body">
      <div class="oferta-titulo">{{.Title}}</div>
      <div class="empresa">{{.MerchantName}}{{if .MerchantAddress}} &middot; {{.MerchantAddress}}{{end}}</div>
      <div class="codigo">{{.Code}}</div>
      <div class="fila"><span class="etiqueta">Precio regular</span><span class="valor">${{printf "%.2f" .RegularPrice}}</span></div>
      <div class="fila"><span class="etiqueta">Pagaste</span><span class="valor">${{printf "%.2f" .PricePaid}}</span></div>
      <div class="fila"><span class="etiqueta">Ahorro</span><span class="valor">${{printf "%.2f" .Savings}}</span></div>
      <div class="fila"><span class="etiqueta">Fecha de compra</span><span class="valor">{{.PurchasedAt}}</span></div>
      <div class="fila"><span class="etiqueta">Válido hasta</span><span class="valor">{{.ExpiresAt}}</span></div>
      {{if .Terms}}<div class="terminos">{{.Terms}}</div>{{end}}
    </div>
  </div>
  <script>window.print()</script>
</body>
</html>
`))

// RenderPrintable produces the printable document for a coupon with its
// offer snapshot attached. Performs no validation; callers pass fully
// populated coupons only.
func RenderPrintable(c *model.Coupon) ([]byte, error) {
	data := printData{
		Code:        c.Code,
		PricePaid:   c.PricePaid,
		PurchasedAt: c.PurchasedAt.Format("02/01/2006"),
		ExpiresAt:   c.ExpiresAt.Format("02/01/2006"),
	}
	if c.Offer != nil {
		data.Title = c.Offer.Title
		data.MerchantName = c.Offer.MerchantName
		data.MerchantAddress = c.Offer.MerchantAddress
		data.DiscountPercent = c.Offer.DiscountPercent
		data.RegularPrice = c.Offer.RegularPrice
		data.Savings = c.Offer.RegularPrice - c.PricePaid
		data.Terms = c.Offer.Terms
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
