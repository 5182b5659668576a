package checkout

import (
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

// PreCheckoutLine is a variant and quantity picked for a new checkout.
type PreCheckoutLine struct {
	variant  Variant
	quantity int
}

// NewPreCheckoutLine requires a variant and a positive quantity.
func NewPreCheckoutLine(variant Variant, quantity int) (PreCheckoutLine, error) {
	if variant == nil {
		return PreCheckoutLine{}, errs.NewValueIsRequiredError("variant")
	}
	if quantity <= 0 {
		return PreCheckoutLine{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return PreCheckoutLine{variant: variant, quantity: quantity}, nil
}

func (l PreCheckoutLine) Variant() Variant { return l.variant }
func (l PreCheckoutLine) Quantity() int    { return l.quantity }

// Line is a checkout line: a snapshot of the variant as it was when the checkout was
// created. Non positive variant prices are stored as 0.
type Line struct {
	id       kernel.UUID
	checkout *Checkout

	variantID        kernel.UUID
	productID        kernel.UUID
	productName      string
	variantName      string
	unitPrice        int64
	mass             float64
	quantity         int
	shippingRequired bool
}

func (l *Line) ID() kernel.UUID          { return l.id }
func (l *Line) VariantID() kernel.UUID   { return l.variantID }
func (l *Line) ProductID() kernel.UUID   { return l.productID }
func (l *Line) ProductName() string      { return l.productName }
func (l *Line) VariantName() string      { return l.variantName }
func (l *Line) UnitPrice() int64         { return l.unitPrice }
func (l *Line) Mass() float64            { return l.mass }
func (l *Line) Quantity() int            { return l.quantity }
func (l *Line) IsShippingRequired() bool { return l.shippingRequired }

// BelongsTo reports whether l is owned by c.
func (l *Line) BelongsTo(c *Checkout) bool {
	return c != nil && l.checkout == c
}

// TotalPrice is unit price times quantity.
func (l *Line) TotalPrice() int64 {
	return l.unitPrice * int64(l.quantity)
}
