// Package store holds the client-side state containers behind the
// storefront UI: cart, catalog, orders and shipping addresses. Stores are
// explicitly constructed and injected by the composition root, there are
// no package-level singletons.
//
// Error policy: every operation clears the store's last error on entry and
// records any failure as a string. Cart operations only record. Mutations
// on products, orders and addresses record and additionally return the
// error so callers can react.
package store

import "errors"

// ErrAuthRequired is recorded and returned when an operation that needs a
// session runs in guest mode.
var ErrAuthRequired = errors.New("authentication required")
