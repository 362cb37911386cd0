// Package order contains the Order aggregate root: the customer's move
// request together with its resource assignments, quote, lifecycle status
// and per-worker assignment records.
package order
