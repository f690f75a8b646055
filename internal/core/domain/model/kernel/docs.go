// Package kernel holds the value objects shared by the ordering domain.
//
// The package includes:
//   - Money: an exact, non-negative decimal amount in one currency
//   - OrderID, CustomerID, ProductID: validated opaque identifiers
//   - Quantity: a strictly positive unit count
//
// All values are immutable. Constructors validate their input and return typed
// errors from internal/pkg/errs; operations produce new values instead of
// mutating the receiver, so values can be shared freely between goroutines.
package kernel
