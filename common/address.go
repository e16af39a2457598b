package common

import "strings"

// Address identifies an account on the ledgers. Addresses are opaque
// case-insensitive strings; the zero value is treated as "no account"
// everywhere, matching zero-address guards on the original ledgers.
type Address string

const ZeroAddress Address = ""

func NewAddress(s string) Address {
	return Address(strings.ToLower(strings.TrimSpace(s)))
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) String() string {
	return string(a)
}
