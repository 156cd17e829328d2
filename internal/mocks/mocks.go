package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tastehaven/internal/domain"
)

type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	var snap *domain.Snapshot
	if v := args.Get(0); v != nil {
		snap = v.(*domain.Snapshot)
	}
	return snap, args.Error(1)
}

func (m *SnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

type OrderPublisher struct {
	mock.Mock
}

func (m *OrderPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type IdentityProvider struct {
	mock.Mock
}

func (m *IdentityProvider) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	var sess *domain.Session
	if v := args.Get(0); v != nil {
		sess = v.(*domain.Session)
	}
	return sess, args.Error(1)
}

func (m *IdentityProvider) SignUp(ctx context.Context, email, password, restaurantName string) (*domain.Session, error) {
	args := m.Called(ctx, email, password, restaurantName)
	var sess *domain.Session
	if v := args.Get(0); v != nil {
		sess = v.(*domain.Session)
	}
	return sess, args.Error(1)
}

func (m *IdentityProvider) SignOut(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *IdentityProvider) CurrentUser(ctx context.Context) (*domain.Session, error) {
	args := m.Called(ctx)
	var sess *domain.Session
	if v := args.Get(0); v != nil {
		sess = v.(*domain.Session)
	}
	return sess, args.Error(1)
}

type QRGenerator struct {
	mock.Mock
}

func (m *QRGenerator) Generate(target string) ([]byte, error) {
	args := m.Called(target)
	var png []byte
	if v := args.Get(0); v != nil {
		png = v.([]byte)
	}
	return png, args.Error(1)
}
