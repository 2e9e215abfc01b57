package models

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/money"
)

func TestNewItem(t *testing.T) {
	owner := uuid.New()
	cat := &Category{ID: uuid.New(), Name: "Party Wear", Slug: "party", Active: true}
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("IST", 19800))

	item := NewItem(NewItemParams{
		OwnerID:         owner,
		Category:        cat,
		Title:           "Sequin dress",
		Size:            "M",
		PricePerDay:     money.MustFromMajor(800),
		SecurityDeposit: money.MustFromMajor(2000),
		City:            "Pune",
	}, now)

	if item.ID == uuid.Nil {
		t.Fatal("expected non-zero UUID for ID")
	}
	if item.OwnerID != owner || item.CategoryID != cat.ID || item.CategorySlug != "party" {
		t.Fatalf("owner/category not copied: %+v", item)
	}
	if item.Status != ItemAvailable || !item.Active {
		t.Fatalf("expected available and active, got %s active=%v", item.Status, item.Active)
	}
	if item.Rating != 0 || item.ReviewsCount != 0 || item.Views != 0 {
		t.Fatalf("expected zero counters, got %+v", item)
	}
	if item.Condition != DefaultCondition {
		t.Fatalf("expected default condition, got %q", item.Condition)
	}
	if item.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC CreatedAt, got %v", item.CreatedAt.Location())
	}
}

func TestNewItem_UniqueIDs(t *testing.T) {
	a := NewItem(NewItemParams{Title: "A"}, time.Now())
	b := NewItem(NewItemParams{Title: "B"}, time.Now())
	if a.ID == b.ID {
		t.Fatal("expected unique IDs for separately created items")
	}
}

func TestParseSize(t *testing.T) {
	for _, s := range Sizes {
		if got, err := ParseSize(string(s)); err != nil || got != s {
			t.Errorf("ParseSize(%q) = %q, %v", s, got, err)
		}
	}
	for _, bad := range []string{"", "m", "XXXL"} {
		if _, err := ParseSize(bad); err == nil {
			t.Errorf("ParseSize(%q) expected error", bad)
		}
	}
}

func TestItemFilter_Matches(t *testing.T) {
	item := &Item{
		Title:        "Velvet Sherwani",
		Description:  "Maroon, hand embroidered",
		CategorySlug: "traditional",
		Size:         "L",
		PricePerDay:  money.MustFromMajor(1500),
		City:         "New Delhi",
		Active:       true,
	}

	tests := []struct {
		name   string
		filter ItemFilter
		want   bool
	}{
		{"no filters", ItemFilter{}, true},
		{"category", ItemFilter{CategorySlug: "traditional"}, true},
		{"other category", ItemFilter{CategorySlug: "party"}, false},
		{"size", ItemFilter{Size: "L"}, true},
		{"other size", ItemFilter{Size: "M"}, false},
		{"within price range", ItemFilter{MinPrice: money.MustFromMajor(1000), MaxPrice: money.MustFromMajor(1500)}, true},
		{"below min price", ItemFilter{MinPrice: money.MustFromMajor(1501)}, false},
		{"above max price", ItemFilter{MaxPrice: money.MustFromMajor(1499)}, false},
		{"city substring any case", ItemFilter{City: "delhi"}, true},
		{"other city", ItemFilter{City: "Mumbai"}, false},
		{"search title", ItemFilter{Search: "sherwani"}, true},
		{"search description", ItemFilter{Search: "EMBROIDERED"}, true},
		{"search miss", ItemFilter{Search: "lehenga"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(item); got != tt.want {
				t.Fatalf("Matches = %v, want %v", got, tt.want)
			}
		})
	}

	inactive := *item
	inactive.Active = false
	if (ItemFilter{}).Matches(&inactive) {
		t.Fatal("inactive items never match")
	}
}
