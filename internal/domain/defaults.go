package domain

// Categories is the fixed set a menu item may belong to.
var Categories = []string{"appetizers", "mains", "pasta", "desserts", "beverages"}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// DefaultSnapshot seeds the catalog on first start and whenever the
// persisted record is missing or unreadable.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Restaurant: Restaurant{
			ID:             "1",
			Name:           "Taste Haven",
			Logo:           "🍽️",
			Tagline:        "Sabores que conquistam",
			WhatsAppNumber: "5511999999999",
			Description:    "Cozinha caseira com ingredientes frescos",
			Address:        "Rua das Flores, 123 - São Paulo",
		},
		MenuItems: []MenuItem{
			{
				ID:          "1",
				Name:        "Lula à Milanesa",
				Description: "Lula frita crocante",
				Price:       12.99,
				Image:       "https://via.placeholder.com/300?text=Lula",
				Category:    "appetizers",
				Available:   true,
			},
			{
				ID:          "2",
				Name:        "Bruschetta",
				Description: "Pão italiano com tomate e manjericão",
				Price:       9.50,
				Image:       "https://via.placeholder.com/300?text=Bruschetta",
				Category:    "appetizers",
				Available:   true,
			},
			{
				ID:          "3",
				Name:        "Filé à Parmegiana",
				Description: "Filé empanado com molho de tomate e queijo",
				Price:       34.90,
				Image:       "https://via.placeholder.com/300?text=Parmegiana",
				Category:    "mains",
				Available:   true,
			},
			{
				ID:          "4",
				Name:        "Spaghetti Carbonara",
				Description: "Massa fresca com pancetta e parmesão",
				Price:       28.00,
				Image:       "https://via.placeholder.com/300?text=Carbonara",
				Category:    "pasta",
				Available:   true,
			},
			{
				ID:          "5",
				Name:        "Petit Gâteau",
				Description: "Bolo quente de chocolate com sorvete",
				Price:       15.50,
				Image:       "https://via.placeholder.com/300?text=Petit+Gateau",
				Category:    "desserts",
				Available:   true,
			},
			{
				ID:          "6",
				Name:        "Suco de Laranja",
				Description: "Natural, 500ml",
				Price:       8.00,
				Image:       "https://via.placeholder.com/300?text=Suco",
				Category:    "beverages",
				Available:   true,
			},
		},
	}
}
