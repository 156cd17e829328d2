package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tastehaven/internal/domain"
	"tastehaven/internal/mocks"
	"tastehaven/internal/service"
)

const (
	mobileAgent  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"
	desktopAgent = "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{800, "8.00"},
		{2598, "25.98"},
		{123456, "1234.56"},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, service.FormatAmount(testCase.cents))
	}
}

func TestFormatMessage(t *testing.T) {
	lines := []domain.CartLine{{ID: "1", Name: "Lula", PriceCents: 1299, Quantity: 2}}

	t.Run("without notes", func(t *testing.T) {
		got := service.FormatMessage(lines, 2598, "Ana", "")

		want := "Olá! Gostaria de fazer um pedido:\n\n" +
			"• Lula x2 - R$25.98\n\n" +
			"*Total:* R$25.98\n\n" +
			"*Cliente:* Ana"
		assert.Equal(t, want, got)
		assert.NotContains(t, got, "Observações")
	})

	t.Run("with notes", func(t *testing.T) {
		got := service.FormatMessage(lines, 2598, "Ana", "Sem cebola")
		assert.Contains(t, got, "\n*Observações:* Sem cebola")
	})

	t.Run("multiple lines keep order", func(t *testing.T) {
		multi := append(lines, domain.CartLine{ID: "2", Name: "Suco", PriceCents: 800, Quantity: 1})
		got := service.FormatMessage(multi, 3398, "Ana", "")
		assert.Contains(t, got, "• Lula x2 - R$25.98\n• Suco x1 - R$8.00")
		assert.Contains(t, got, "*Total:* R$33.98")
	})
}

func TestHandoffURL(t *testing.T) {
	message := "Olá! Pedido: açaí"

	mobile := service.HandoffURL("5511999999999", message, true)
	assert.True(t, strings.HasPrefix(mobile, "https://wa.me/5511999999999?text="))
	assert.NotContains(t, mobile, " ")

	desktop := service.HandoffURL("5511999999999", message, false)
	assert.True(t, strings.HasPrefix(desktop, "https://web.whatsapp.com/send?phone=5511999999999&text="))
}

func newOrderFixture(t *testing.T, publisher service.OrderPublisher) (*service.OrderService, *service.CatalogService, *service.CartService) {
	t.Helper()
	repo := new(mocks.SnapshotRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()

	catalog := service.NewCatalogService(repo)
	cart := service.NewCartService()
	orders := service.NewOrderService(catalog, cart, publisher, &service.DefaultQRGenerator{})
	return orders, catalog, cart
}

func TestOrderService_CheckoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*service.CatalogService, *service.CartService)
		req     service.CheckoutRequest
		wantErr error
	}{
		{
			name:    "missing customer name",
			setup:   func(catalog *service.CatalogService, cart *service.CartService) {},
			req:     service.CheckoutRequest{SessionID: "s1", CustomerName: "  "},
			wantErr: service.ErrValidation,
		},
		{
			name: "empty cart",
			setup: func(catalog *service.CatalogService, cart *service.CartService) {
			},
			req:     service.CheckoutRequest{SessionID: "s1", CustomerName: "Ana"},
			wantErr: service.ErrCartEmpty,
		},
		{
			name: "missing routing number",
			setup: func(catalog *service.CatalogService, cart *service.CartService) {
				catalog.UpdateRestaurant(context.Background(), domain.RestaurantUpdate{WhatsAppNumber: strPtr("")})
				cart.AddItem("s1", line("1", "Lula", 1299), 1)
			},
			req:     service.CheckoutRequest{SessionID: "s1", CustomerName: "Ana"},
			wantErr: service.ErrMissingRoutingNumber,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders, catalog, cart := newOrderFixture(t, nil)
			testCase.setup(catalog, cart)

			result, err := orders.Checkout(context.Background(), testCase.req)
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestOrderService_CheckoutBuildsHandoff(t *testing.T) {
	publisher := new(mocks.OrderPublisher)
	publisher.On("PublishOrder", mock.Anything, mock.AnythingOfType("domain.OrderEvent")).Return(nil).Once()

	orders, _, cart := newOrderFixture(t, publisher)
	cart.AddItem("s1", line("1", "Lula", 1299), 2)

	result, err := orders.Checkout(context.Background(), service.CheckoutRequest{
		SessionID:    "s1",
		CustomerName: "Ana",
		UserAgent:    mobileAgent,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2598), result.TotalCents)
	assert.Contains(t, result.Message, "Lula x2 - R$25.98")
	assert.True(t, strings.HasPrefix(result.HandoffURL, "https://wa.me/5511999999999?text="))

	// the cart stays intact so a failed hand-off can be retried
	assert.Len(t, cart.Lines("s1"), 1)

	publisher.AssertExpectations(t)
	event := publisher.Calls[0].Arguments.Get(1).(domain.OrderEvent)
	assert.Equal(t, "order_submitted", event.Type)
	assert.Equal(t, int64(2598), event.TotalCents)
	assert.Equal(t, "Ana", event.CustomerName)
}

func TestOrderService_CheckoutDesktopURL(t *testing.T) {
	orders, _, cart := newOrderFixture(t, nil)
	cart.AddItem("s1", line("1", "Lula", 1299), 1)

	result, err := orders.Checkout(context.Background(), service.CheckoutRequest{
		SessionID:    "s1",
		CustomerName: "Ana",
		UserAgent:    desktopAgent,
	})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.HandoffURL, "https://web.whatsapp.com/send?phone="))
}

func TestOrderService_CheckoutSurvivesPublishFailure(t *testing.T) {
	publisher := new(mocks.OrderPublisher)
	publisher.On("PublishOrder", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	orders, _, cart := newOrderFixture(t, publisher)
	cart.AddItem("s1", line("1", "Lula", 1299), 1)

	result, err := orders.Checkout(context.Background(), service.CheckoutRequest{
		SessionID:    "s1",
		CustomerName: "Ana",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestOrderService_HandoffQR(t *testing.T) {
	qr := new(mocks.QRGenerator)
	qr.On("Generate", mock.MatchedBy(func(target string) bool {
		return strings.HasPrefix(target, "https://wa.me/")
	})).Return([]byte("png"), nil).Once()

	repo := new(mocks.SnapshotRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	catalog := service.NewCatalogService(repo)
	cart := service.NewCartService()
	orders := service.NewOrderService(catalog, cart, nil, qr)

	cart.AddItem("s1", line("1", "Lula", 1299), 1)

	png, err := orders.HandoffQR(context.Background(), service.CheckoutRequest{
		SessionID:    "s1",
		CustomerName: "Ana",
	})

	assert.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
	qr.AssertExpectations(t)
}

func TestOrderService_ClearAfter(t *testing.T) {
	t.Run("fires after delay", func(t *testing.T) {
		orders, _, cart := newOrderFixture(t, nil)
		cart.AddItem("s1", line("1", "Lula", 1299), 1)

		orders.ClearAfter(context.Background(), "s1", 20*time.Millisecond)

		assert.Eventually(t, func() bool {
			return len(cart.Lines("s1")) == 0
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("cancelled before the delay leaves the cart alone", func(t *testing.T) {
		orders, _, cart := newOrderFixture(t, nil)
		cart.AddItem("s1", line("1", "Lula", 1299), 1)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		orders.ClearAfter(ctx, "s1", 20*time.Millisecond)

		time.Sleep(100 * time.Millisecond)
		assert.Len(t, cart.Lines("s1"), 1)
	})
}
