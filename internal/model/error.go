package model

import "fmt"

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
	KindInternal   ErrorKind = "internal"
)

// Standard error codes for API responses
const (
	ErrCodeMissingField           = "MISSING_FIELD"
	ErrCodeProductNotFound        = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound          = "ORDER_NOT_FOUND"
	ErrCodeInsufficientStock      = "INSUFFICIENT_STOCK"
	ErrCodeInvalidQuantity        = "INVALID_QUANTITY"
	ErrCodeInvalidPaymentMethod   = "INVALID_PAYMENT_METHOD"
	ErrCodeShippingLocationNeeded = "SHIPPING_LOCATION_REQUIRED"
	ErrCodeUnknownShippingRegion  = "UNKNOWN_SHIPPING_LOCATION"
	ErrCodeVoucherShippingRule    = "VOUCHER_REQUIRES_FREE_SHIPPING"
	ErrCodeInvalidTransition      = "INVALID_STATUS_TRANSITION"
	ErrCodeInvalidStockAction     = "INVALID_STOCK_ACTION"
	ErrCodeInvalidFlashDeal       = "INVALID_FLASH_DEAL_PERIOD"
	ErrCodeInternalError          = "INTERNAL_ERROR"
)

// DomainError is a typed business-rule error carrying enough information
// for the HTTP boundary to map it to a status code and message.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewNotFound creates a not-found domain error.
func NewNotFound(code, message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code, Message: message}
}

// NewValidation creates a validation domain error.
func NewValidation(code, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message}
}

// Common domain errors
var (
	ErrProductNotFound  = NewNotFound(ErrCodeProductNotFound, "One or more products not found")
	ErrOrderNotFound    = NewNotFound(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidQuantity  = NewValidation(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrCancelDelivered  = NewValidation(ErrCodeInvalidTransition, "Cannot cancel a delivered order")
	ErrInvalidFlashDeal = NewValidation(ErrCodeInvalidFlashDeal, "Invalid flash deal period")
)

// ErrInsufficientStock creates the validation error for a line whose
// requested quantity exceeds available stock.
func ErrInsufficientStock(productName string) *DomainError {
	return NewValidation(ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for product %q", productName))
}

// ErrVoucherShippingConflict creates the validation error for a product
// carrying a voucher balance without free shipping.
func ErrVoucherShippingConflict(productName string) *DomainError {
	return NewValidation(ErrCodeVoucherShippingRule,
		fmt.Sprintf("Product %q with voucher balance requires free delivery", productName))
}

// ErrNoShippingPrice creates the validation error for an unresolvable
// shipping location.
func ErrNoShippingPrice(location string) *DomainError {
	return NewValidation(ErrCodeUnknownShippingRegion,
		fmt.Sprintf("No shipping price for location: %s", location))
}

// ErrIllegalTransition creates the validation error for a forbidden
// order status transition.
func ErrIllegalTransition(from, to OrderStatus) *DomainError {
	return NewValidation(ErrCodeInvalidTransition,
		fmt.Sprintf("Cannot change order status from %s to %s", from, to))
}
