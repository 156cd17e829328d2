package service

import (
	"context"
	"time"

	"tastehaven/internal/domain"
)

// SnapshotRepository persists the catalog as one whole record. Load returns
// (nil, nil) when no record exists yet.
type SnapshotRepository interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}

// OrderPublisher emits a hand-off notification for a submitted order.
type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

// IdentityProvider is the external authentication backend. Its wire
// protocol is opaque to the rest of the service.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignUp(ctx context.Context, email, password, restaurantName string) (*domain.Session, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.Session, error)
}

type QRGenerator interface {
	Generate(target string) ([]byte, error)
}

type CatalogServiceInterface interface {
	Load(ctx context.Context)
	Get() (domain.Restaurant, []domain.MenuItem)
	UpdateRestaurant(ctx context.Context, upd domain.RestaurantUpdate)
	AddItem(ctx context.Context, item domain.MenuItem)
	UpdateItem(ctx context.Context, id string, upd domain.MenuItemUpdate) bool
	DeleteItem(ctx context.Context, id string)
}

type CartServiceInterface interface {
	AddItem(sessionID string, line domain.CartLine, quantity int) error
	UpdateQuantity(sessionID, id string, quantity int)
	RemoveItem(sessionID, id string)
	Clear(sessionID string)
	Lines(sessionID string) []domain.CartLine
	TotalCents(sessionID string) int64
}

type OrderServiceInterface interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	HandoffQR(ctx context.Context, req CheckoutRequest) ([]byte, error)
	ClearAfter(ctx context.Context, sessionID string, delay time.Duration)
}

type AuthServiceInterface interface {
	CurrentSession() *domain.Session
	OnSessionChange(fn func(*domain.Session)) func()
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Signup(ctx context.Context, email, password, restaurantName string) (*domain.Session, error)
	Logout(ctx context.Context) error
}
