package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"tastehaven/internal/domain"
)

const messageGreeting = "Olá! Gostaria de fazer um pedido:"

var (
	routingNumberPattern = regexp.MustCompile(`^[0-9]+$`)
	mobileAgentPattern   = regexp.MustCompile(`(?i)iPhone|iPad|iPod|Android`)
)

type CheckoutRequest struct {
	SessionID     string
	CustomerName  string
	CustomerNotes string
	UserAgent     string
}

type CheckoutResult struct {
	Message    string `json:"message"`
	HandoffURL string `json:"url"`
	TotalCents int64  `json:"total_cents"`
}

// OrderService turns a cart snapshot into a pre-formatted message and a
// messaging-channel URL. It never mutates the cart on its own: the hand-off
// is fire-and-forget and the cart stays intact so a failed attempt can be
// retried.
type OrderService struct {
	catalog   CatalogServiceInterface
	cart      CartServiceInterface
	publisher OrderPublisher
	qr        QRGenerator
}

func NewOrderService(catalog CatalogServiceInterface, cart CartServiceInterface, publisher OrderPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		catalog:   catalog,
		cart:      cart,
		publisher: publisher,
		qr:        qr,
	}
}

// FormatAmount renders cents as a two-decimal display value. Rounding
// happened when the price entered the cart; this is formatting only.
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// FormatMessage renders cart lines plus the customer fields into the
// hand-off text. Percent-encoding is the URL builder's job, not done here.
func FormatMessage(lines []domain.CartLine, totalCents int64, customerName, customerNotes string) string {
	var b strings.Builder
	b.WriteString(messageGreeting)
	b.WriteString("\n\n")
	for _, line := range lines {
		subtotal := line.PriceCents * int64(line.Quantity)
		fmt.Fprintf(&b, "• %s x%d - R$%s\n", line.Name, line.Quantity, FormatAmount(subtotal))
	}
	fmt.Fprintf(&b, "\n*Total:* R$%s\n\n*Cliente:* %s", FormatAmount(totalCents), customerName)
	if customerNotes != "" {
		fmt.Fprintf(&b, "\n*Observações:* %s", customerNotes)
	}
	return b.String()
}

// HandoffURL builds the messaging-channel URL for the routing number and
// message. Mobile clients get the app deep link, everything else the web
// client.
func HandoffURL(routingNumber, message string, mobile bool) string {
	encoded := url.QueryEscape(message)
	if mobile {
		return "https://wa.me/" + routingNumber + "?text=" + encoded
	}
	return "https://web.whatsapp.com/send?phone=" + routingNumber + "&text=" + encoded
}

func (s *OrderService) buildHandoff(req CheckoutRequest) (string, string, int64, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return "", "", 0, fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	restaurant, _ := s.catalog.Get()
	if !routingNumberPattern.MatchString(restaurant.WhatsAppNumber) {
		return "", "", 0, ErrMissingRoutingNumber
	}

	lines := s.cart.Lines(req.SessionID)
	if len(lines) == 0 {
		return "", "", 0, ErrCartEmpty
	}

	total := s.cart.TotalCents(req.SessionID)
	message := FormatMessage(lines, total, strings.TrimSpace(req.CustomerName), strings.TrimSpace(req.CustomerNotes))
	return message, restaurant.WhatsAppNumber, total, nil
}

// Checkout validates the cart and profile, builds the hand-off message and
// URL, and publishes an order_submitted notification when a publisher is
// wired. The cart is left untouched.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	message, routing, total, err := s.buildHandoff(req)
	if err != nil {
		return nil, err
	}

	mobile := mobileAgentPattern.MatchString(req.UserAgent)
	result := &CheckoutResult{
		Message:    message,
		HandoffURL: HandoffURL(routing, message, mobile),
		TotalCents: total,
	}

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:         "order_submitted",
			SessionID:    req.SessionID,
			Items:        s.cart.Lines(req.SessionID),
			TotalCents:   total,
			CustomerName: strings.TrimSpace(req.CustomerName),
			Timestamp:    time.Now(),
		}
		if err := s.publisher.PublishOrder(ctx, event); err != nil {
			log.Printf("[orders] publish failed: %v", err)
		}
	}

	return result, nil
}

// HandoffQR encodes the app deep link as a PNG so a desktop customer can
// scan it and send the order from a phone.
func (s *OrderService) HandoffQR(ctx context.Context, req CheckoutRequest) ([]byte, error) {
	message, routing, _, err := s.buildHandoff(req)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(HandoffURL(routing, message, true))
}

// ClearAfter empties the session's cart once delay has elapsed. The pending
// clear is dropped when ctx is cancelled first, so an abandoned hand-off
// never mutates the cart later.
func (s *OrderService) ClearAfter(ctx context.Context, sessionID string, delay time.Duration) {
	timer := time.NewTimer(delay)
	go func() {
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			s.cart.Clear(sessionID)
		}
	}()
}

var _ OrderServiceInterface = (*OrderService)(nil)
