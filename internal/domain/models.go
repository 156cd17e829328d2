package domain

import (
	"math"
	"time"
)

// Restaurant is the storefront profile. WhatsAppNumber is the digits-only
// contact used to address the messaging hand-off and must be set before
// any order can be sent.
type Restaurant struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Logo           string `json:"logo"`
	Tagline        string `json:"tagline"`
	WhatsAppNumber string `json:"whatsappNumber"`
	Description    string `json:"description"`
	Address        string `json:"address"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Available   bool    `json:"available"`
}

// Snapshot is the unit written to persistent storage: the whole catalog,
// profile and items together, serialized as one record.
type Snapshot struct {
	Restaurant Restaurant `json:"restaurant"`
	MenuItems  []MenuItem `json:"menuItems"`
}

// RestaurantUpdate carries a partial profile edit. Nil fields are left
// untouched by the merge.
type RestaurantUpdate struct {
	Name           *string
	Logo           *string
	Tagline        *string
	WhatsAppNumber *string
	Description    *string
	Address        *string
}

type MenuItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
	Category    *string
	Available   *bool
}

// CartLine is one cart entry. Name, price and image are copied from the
// menu item at add time and are not re-synced if the item changes later.
// Prices are carried in integer cents so totals never accumulate
// floating-point drift.
type CartLine struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image"`
	Quantity   int    `json:"quantity"`
}

// Session mirrors the identity provider's current user. It is never
// persisted locally.
type Session struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	RestaurantName string `json:"restaurant_name,omitempty"`
}

// OrderEvent is published when a customer hands an order off to the
// messaging channel. It is a notification, not an order record.
type OrderEvent struct {
	Type         string     `json:"type"`
	SessionID    string     `json:"session_id"`
	Items        []CartLine `json:"items"`
	TotalCents   int64      `json:"total_cents"`
	CustomerName string     `json:"customer_name"`
	Timestamp    time.Time  `json:"timestamp"`
}

// ToCents converts a display price to integer cents, rounding to the
// nearest cent once at the boundary.
func ToCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
