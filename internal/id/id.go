// Package id generates and inspects record identifiers. Every stored
// record carries a kind-prefixed id like "tx_6f1c..." so a bare id in a
// log line or CSV cell is self-describing.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Record kind prefixes.
const (
	KindTransaction = "tx"
	KindInvoice     = "inv"
	KindGroup       = "grp"
	KindAccount     = "acc"
	KindClosing     = "cls"
	KindRule        = "rule"
)

// New returns a fresh id for the given kind, e.g. "inv_1b9d6bcd...".
func New(kind string) string {
	return kind + "_" + uuid.NewString()
}

// Kind returns the prefix of an id, or "" if it has none.
func Kind(id string) string {
	k, _, ok := strings.Cut(id, "_")
	if !ok {
		return ""
	}
	return k
}

// Validate checks that id carries the expected kind prefix.
func Validate(id, kind string) error {
	if Kind(id) != kind {
		return fmt.Errorf("id %q is not a %s id", id, kind)
	}
	return nil
}
