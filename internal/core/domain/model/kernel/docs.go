// Package kernel holds the value objects shared by every shop aggregate.
//
// The package includes:
//   - UUID: identifier wrapper with validation of the zero value
//   - Address: postal address with an explicit field-by-field Copy
//   - Currency: ISO 4217 currency code
//   - MassUnit: unit a checkout reports its total mass in, with conversion to kilograms
//   - ShippingMethodDetails: the name/amount/type snapshot of a chosen shipping method
//
// All values are immutable once constructed; zero values are invalid and fail Validate.
package kernel
