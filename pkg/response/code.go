package response

// Business status codes
const (
	CodeSuccess = 0
	CodeError   = 1

	// User module errors 100xx
	ErrUserExists      = 10001
	ErrUserNotFound    = 10002
	ErrAuthFailed      = 10003
	ErrTokenInvalid    = 10004
	ErrNoPermission    = 10005
	ErrUnauthenticated = 10006

	// Offer module errors 200xx
	ErrOfferNotFound = 20001
	ErrOfferExpired  = 20002
	ErrOfferSoldOut  = 20003

	// Purchase/coupon module errors 300xx
	ErrCouponNotFound  = 30001
	ErrPaymentRejected = 30002
	ErrCodeExhausted   = 30003

	// System errors 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
	ErrStoreQuery      = 50004
)
