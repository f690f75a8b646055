// Package errs provides the typed errors shared by the ordering service.
//
// Every error type has a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...)
// reachable through errors.Is, and also reports itself as ErrDomain so that
// adapters can tell business rule violations from infrastructure failures.
package errs
