// Package catalog holds the read side of the product catalog that checkouts are
// built from: products and their purchasable variants.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
	// ErrVariantIsNotConstructed is returned when using an improperly initialized Variant.
	ErrVariantIsNotConstructed = errors.New("Variant must be created via NewVariant constructor")
)

// Product is a catalog entry. Its base price and weight apply to every variant
// that does not override them.
type Product struct {
	id        kernel.UUID
	name      string
	basePrice int64
	weight    float64
	digital   bool
	published bool
	guard     guard.ConstructorGuard
}

// NewProduct creates a product.
//
// Parameters:
//   - id: product identifier
//   - name: display name, required
//   - basePrice: price in minor units of the shop currency
//   - weight: shipping weight per unit, in the shop's mass unit; ignored for digital products
//   - digital: digital products never require shipping
//   - published: only published products can be put into a checkout
func NewProduct(id kernel.UUID, name string, basePrice int64, weight float64, digital, published bool) (*Product, error) {
	p := &Product{
		basePrice: basePrice,
		weight:    weight,
		digital:   digital,
		published: published,
		guard:     guard.NewConstructorGuard(),
	}

	name = strings.TrimSpace(name)
	if err := errors.Join(
		id.Validate(),
		requireName("product name", name),
	); err != nil {
		return nil, err
	}
	p.id = id
	p.name = name

	return p, nil
}

func requireName(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

// Validate ensures the product was built by NewProduct.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID   { return p.id }
func (p *Product) Name() string      { return p.name }
func (p *Product) BasePrice() int64  { return p.basePrice }
func (p *Product) Weight() float64   { return p.weight }
func (p *Product) IsDigital() bool   { return p.digital }
func (p *Product) IsPublished() bool { return p.published }

// Variant is a purchasable option of a Product, such as a size or a color.
type Variant struct {
	id            kernel.UUID
	product       *Product
	name          string
	priceOverride *int64
	weight        *float64
	guard         guard.ConstructorGuard
}

// NewVariant creates a variant of product. A nil priceOverride or weight falls back
// to the product's value.
func NewVariant(id kernel.UUID, product *Product, name string, priceOverride *int64, weight *float64) (*Variant, error) {
	if err := errors.Join(id.Validate(), product.Validate()); err != nil {
		return nil, err
	}
	if weight != nil && *weight < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("variant weight", fmt.Errorf("%v is negative", *weight))
	}

	v := &Variant{
		id:      id,
		product: product,
		name:    strings.TrimSpace(name),
		guard:   guard.NewConstructorGuard(),
	}
	if priceOverride != nil {
		price := *priceOverride
		v.priceOverride = &price
	}
	if weight != nil {
		w := *weight
		v.weight = &w
	}
	return v, nil
}

// Validate ensures the variant was built by NewVariant.
func (v *Variant) Validate() error {
	if v == nil {
		return ErrVariantIsNotConstructed
	}
	return v.guard.Validate(ErrVariantIsNotConstructed)
}

func (v *Variant) ID() kernel.UUID        { return v.id }
func (v *Variant) Name() string           { return v.name }
func (v *Variant) Product() *Product      { return v.product }
func (v *Variant) ProductID() kernel.UUID { return v.product.id }
func (v *Variant) ProductName() string    { return v.product.name }
func (v *Variant) IsDigital() bool        { return v.product.digital }
func (v *Variant) IsPublished() bool      { return v.product.published }

// PriceOverride returns the variant specific price, if any.
func (v *Variant) PriceOverride() (int64, bool) {
	if v.priceOverride == nil {
		return 0, false
	}
	return *v.priceOverride, true
}

// OwnWeight returns the variant specific weight, if any.
func (v *Variant) OwnWeight() (float64, bool) {
	if v.weight == nil {
		return 0, false
	}
	return *v.weight, true
}

// EffectivePrice is the price override when set and the product base price otherwise.
func (v *Variant) EffectivePrice() int64 {
	if v.priceOverride != nil {
		return *v.priceOverride
	}
	return v.product.basePrice
}

// Mass is the variant weight when set and the product weight otherwise.
// Digital products weigh nothing.
func (v *Variant) Mass() float64 {
	if v.product.digital {
		return 0
	}
	if v.weight != nil {
		return *v.weight
	}
	return v.product.weight
}
