package models

import (
	"strconv"
	"strings"
)

// AnonymousKey partitions counters recorded without any resolvable identity.
const AnonymousKey = "anonymous"

// Identity is the user behind a tracked event. FID is the Farcaster ID, zero
// when unknown.
type Identity struct {
	FID    int64  `json:"fid,omitempty"`
	Wallet string `json:"wallet,omitempty"`
}

// Key derives the ledger partition key: FID first, then the lower-cased
// wallet, then the anonymous sentinel.
func (i Identity) Key() string {
	if i.FID > 0 {
		return "fid:" + strconv.FormatInt(i.FID, 10)
	}
	if w := NormalizeWallet(i.Wallet); w != "" {
		return "wallet:" + w
	}
	return AnonymousKey
}

// HasFID reports whether the identity can be tracked by the remote service,
// which is keyed by FID only.
func (i Identity) HasFID() bool {
	return i.FID > 0
}

func (i Identity) IsAnonymous() bool {
	return i.Key() == AnonymousKey
}

func NormalizeWallet(wallet string) string {
	return strings.ToLower(strings.TrimSpace(wallet))
}
