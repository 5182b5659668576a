// Package errs provides the error kinds shared by the shop domain and its adapters.
//
// Two families cross the domain boundary:
//   - invalid argument errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError):
//     malformed or missing inputs, reported immediately
//   - DomainRuleViolationError: a state dependent rule break (wrong order status, completed
//     fulfillment, quantity above the assignable amount, unpublished product) carrying the
//     offending aggregate's name and id
//
// ObjectNotFoundError is raised by repositories.
//
// Each error type follows the same pattern: a sentinel error variable, a struct with the error
// details, constructors with and without cause, an Error method and an Unwrap method returning
// the sentinel, so classification works through errors.Is and errors.As.
package errs
