package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tastehaven/internal/domain"
	"tastehaven/internal/service"
)

func line(id, name string, cents int64) domain.CartLine {
	return domain.CartLine{ID: id, Name: name, PriceCents: cents}
}

func TestCartService_AddMergesDuplicates(t *testing.T) {
	cart := service.NewCartService()

	assert.NoError(t, cart.AddItem("s1", line("1", "Lula", 1299), 2))
	assert.NoError(t, cart.AddItem("s1", line("1", "Lula", 1299), 3))

	lines := cart.Lines("s1")
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartService_AddRejectsNonPositiveQuantity(t *testing.T) {
	cart := service.NewCartService()

	err := cart.AddItem("s1", line("1", "Lula", 1299), 0)
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Empty(t, cart.Lines("s1"))
}

func TestCartService_TotalIsExact(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*service.CartService)
		want  int64
	}{
		{
			name:  "empty cart",
			setup: func(c *service.CartService) {},
			want:  0,
		},
		{
			name: "single line",
			setup: func(c *service.CartService) {
				c.AddItem("s1", line("1", "Lula", 1299), 2)
			},
			want: 2598,
		},
		{
			name: "accumulation without drift",
			setup: func(c *service.CartService) {
				// 0.10 * 3 would drift in binary floating point.
				c.AddItem("s1", line("1", "Bala", domain.ToCents(0.10)), 3)
				c.AddItem("s1", line("2", "Suco", domain.ToCents(8.00)), 1)
			},
			want: 830,
		},
		{
			name: "update and remove reflected",
			setup: func(c *service.CartService) {
				c.AddItem("s1", line("1", "Lula", 1299), 2)
				c.AddItem("s1", line("2", "Suco", 800), 1)
				c.UpdateQuantity("s1", "1", 1)
				c.RemoveItem("s1", "2")
			},
			want: 1299,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cart := service.NewCartService()
			testCase.setup(cart)
			assert.Equal(t, testCase.want, cart.TotalCents("s1"))
		})
	}
}

func TestCartService_UpdateQuantityClampsToOne(t *testing.T) {
	cart := service.NewCartService()
	cart.AddItem("s1", line("1", "Lula", 1299), 2)

	cart.UpdateQuantity("s1", "1", 0)

	lines := cart.Lines("s1")
	assert.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestCartService_UpdateQuantityMissingLineIsNoop(t *testing.T) {
	cart := service.NewCartService()
	cart.AddItem("s1", line("1", "Lula", 1299), 2)

	cart.UpdateQuantity("s1", "missing", 7)

	assert.Len(t, cart.Lines("s1"), 1)
	assert.Equal(t, int64(2598), cart.TotalCents("s1"))
}

func TestCartService_RemoveAndClear(t *testing.T) {
	cart := service.NewCartService()
	cart.AddItem("s1", line("1", "Lula", 1299), 1)
	cart.AddItem("s1", line("2", "Suco", 800), 1)

	cart.RemoveItem("s1", "missing")
	assert.Len(t, cart.Lines("s1"), 2)

	cart.RemoveItem("s1", "1")
	assert.Len(t, cart.Lines("s1"), 1)

	cart.Clear("s1")
	assert.Empty(t, cart.Lines("s1"))
	assert.Equal(t, int64(0), cart.TotalCents("s1"))
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	cart := service.NewCartService()
	cart.AddItem("s1", line("1", "Lula", 1299), 1)
	cart.AddItem("s2", line("1", "Lula", 1299), 2)

	assert.Equal(t, int64(1299), cart.TotalCents("s1"))
	assert.Equal(t, int64(2598), cart.TotalCents("s2"))

	cart.Clear("s1")
	assert.Equal(t, int64(2598), cart.TotalCents("s2"))
}
