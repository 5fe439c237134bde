package balancev1

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WalletType separates balances of the same user and currency.
type WalletType string

// WalletSpot is the wallet used for spot trading.
const WalletSpot WalletType = "SPOT"

// Key identifies one balance row.
type Key struct {
	UserID     string     `json:"userID"`
	Currency   string     `json:"currency"`
	WalletType WalletType `json:"walletType"`
}

// SpotKey returns the spot wallet key of a user's currency.
func SpotKey(userID, currency string) Key {
	return Key{UserID: userID, Currency: currency, WalletType: WalletSpot}
}

func (k Key) String() string {
	return k.UserID + "/" + k.Currency + "/" + string(k.WalletType)
}

// Less orders keys by user, currency and wallet. Row locks are taken in this order.
func (k Key) Less(other Key) bool {
	if c := strings.Compare(k.UserID, other.UserID); c != 0 {
		return c < 0
	}
	if c := strings.Compare(k.Currency, other.Currency); c != 0 {
		return c < 0
	}
	return k.WalletType < other.WalletType
}

// SortKeys sorts keys into lock order and drops duplicates.
func SortKeys(keys []Key) []Key {
	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	out := sorted[:0]
	for i, k := range sorted {
		if i > 0 && k == sorted[i-1] {
			continue
		}
		out = append(out, k)
	}
	return out
}

// Balance is a wallet's holding of one currency.
type Balance struct {
	Key
	Available decimal.Decimal `json:"available"`
	Locked    decimal.Decimal `json:"locked"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Total returns available plus locked.
func (b *Balance) Total() decimal.Decimal {
	return b.Available.Add(b.Locked)
}
