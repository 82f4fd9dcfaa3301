package shop

import "github.com/ecoloop/ecoloop/internal/store"

// Category groups store items into tabs.
type Category string

const (
	CategoryAll      Category = ""
	CategorySymbolic Category = "symbolic"
	CategoryPremium  Category = "premium"
	CategoryVirtual  Category = "virtual"
)

// AllCategories returns the store tabs in display order. CategoryAll comes
// first and matches every item.
func AllCategories() []Category {
	return []Category{CategoryAll, CategorySymbolic, CategoryPremium, CategoryVirtual}
}

// Valid reports whether c is CategoryAll or one of the defined categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAll, CategorySymbolic, CategoryPremium, CategoryVirtual:
		return true
	default:
		return false
	}
}

// DisplayName returns the tab label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAll:
		return "All Items"
	case CategorySymbolic:
		return "Symbolic"
	case CategoryPremium:
		return "Premium"
	case CategoryVirtual:
		return "Virtual"
	default:
		return string(c)
	}
}

// IconType selects the glyph shown next to an item.
type IconType string

const (
	IconTree   IconType = "tree"
	IconHoodie IconType = "hoodie"
	IconBottle IconType = "bottle"
	IconBadge  IconType = "badge"
	IconWater  IconType = "water"
	IconZap    IconType = "zap"
)

// Icon returns the display icon for the icon type. Unknown types get a star.
func (t IconType) Icon() string {
	switch t {
	case IconTree:
		return "🌲"
	case IconHoodie:
		return "👕"
	case IconBottle:
		return "🧴"
	case IconBadge:
		return "🏅"
	case IconWater:
		return "💧"
	case IconZap:
		return "⚡"
	default:
		return "⭐"
	}
}

// Item is a redeemable store entry.
type Item struct {
	ID          string `validate:"required"`
	Name        string `validate:"required"`
	Description string
	Price       int      `validate:"gte=0"`
	IconType    IconType `validate:"required"`
	Category    Category `validate:"oneof=symbolic premium virtual"`
}

func itemFromRecord(r store.ItemRecord) Item {
	return Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		IconType:    IconType(r.IconType),
		Category:    Category(r.Category),
	}
}

func (it Item) record() store.ItemRecord {
	return store.ItemRecord{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		IconType:    string(it.IconType),
		Category:    string(it.Category),
	}
}

// DefaultCatalog returns the items seeded into an empty store.
func DefaultCatalog() []Item {
	return []Item{
		{
			ID:          "plant-a-tree",
			Name:        "Plant a Tree",
			Description: "We plant a real sapling with a reforestation partner.",
			Price:       500,
			IconType:    IconTree,
			Category:    CategorySymbolic,
		},
		{
			ID:          "clean-water",
			Name:        "Clean Water Share",
			Description: "Funds a day of clean drinking water for one family.",
			Price:       300,
			IconType:    IconWater,
			Category:    CategorySymbolic,
		},
		{
			ID:          "ecoloop-hoodie",
			Name:        "EcoLoop Hoodie",
			Description: "Organic cotton hoodie for top eco warriors.",
			Price:       2000,
			IconType:    IconHoodie,
			Category:    CategoryPremium,
		},
		{
			ID:          "steel-bottle",
			Name:        "Steel Bottle",
			Description: "Reusable insulated bottle. Skip the plastic.",
			Price:       800,
			IconType:    IconBottle,
			Category:    CategoryPremium,
		},
		{
			ID:          "green-badge",
			Name:        "Green Badge",
			Description: "Profile badge that shows off your commitment.",
			Price:       100,
			IconType:    IconBadge,
			Category:    CategoryVirtual,
		},
		{
			ID:          "double-coins",
			Name:        "Coin Booster",
			Description: "Cosmetic boost flair for your next challenge.",
			Price:       150,
			IconType:    IconZap,
			Category:    CategoryVirtual,
		},
	}
}
