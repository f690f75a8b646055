// Package order implements the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root owning items, status and timestamps
//   - Item: an immutable order line with a derived subtotal
//   - Status: the eight-state machine that decides which transitions are legal
//
// Key business rules:
//   - An order is created Pending with at least one item, all in one currency
//   - Pending -> Confirmed -> PaymentProcessing -> Paid -> Shipped -> Delivered
//   - Cancellation is only possible while Pending or Confirmed
//   - PaymentProcessing may end in Failed
//   - A rejected transition returns *InvalidStatusTransitionError and changes nothing
//
// The aggregate performs no I/O and publishes nothing. Callers build domain
// events from the updated aggregate with the events package.
package order
