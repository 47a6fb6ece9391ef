package strategy

// CardInput is the simulated card form submitted at checkout.
type CardInput struct {
	Number string `json:"numero" binding:"required"`
	Holder string `json:"nombre" binding:"required"`
	Expiry string `json:"expiracion" binding:"required"` // MM/YY
	CVV    string `json:"cvv" binding:"required"`
}

// PaymentStrategy gates the purchase flow. Implementations validate the
// payment input and return an authorization reference; no funds move in the
// current scope.
type PaymentStrategy interface {
	Authorize(card CardInput, amount float64) (reference string, err error)
}
