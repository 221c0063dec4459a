// Package ledger derives views from a transaction collection: the balance
// and loan summary, breakdown buckets, and filtered, ordered listings.
//
// Every function here is pure. Inputs are never mutated and the same input
// always yields the same output, so callers may re-run them on every change.
package ledger
