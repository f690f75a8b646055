// Package events defines the domain events of the ordering context.
//
// Events are never raised by the aggregate itself. A command handler performs
// a transition and then calls the matching factory (NewOrderConfirmed, ...),
// which reads the already updated order. Each factory checks that the order is
// in the status the event describes.
package events
