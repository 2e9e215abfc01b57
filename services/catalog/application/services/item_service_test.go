package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rentrobe/rentrobe/pkg/money"
	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	"github.com/rentrobe/rentrobe/services/catalog/domain/events"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
)

func TestCreateItem(t *testing.T) {
	f := newFixture(t)
	in := f.input("  Velvet tuxedo  ", f.formal)
	in.Condition = ""

	item := f.mustCreate(in)

	require.Equal(t, "Velvet tuxedo", item.Title.String())
	require.Equal(t, money.MustFromMajor(800), item.PricePerDay)
	require.Equal(t, money.MustFromMajor(2000), item.SecurityDeposit)
	require.Equal(t, models.ItemAvailable, item.Status)
	require.Equal(t, models.DefaultCondition, item.Condition)
	require.Equal(t, "formal", item.CategorySlug)
	require.True(t, item.Active)
	require.Zero(t, item.Rating)

	published := f.store.Events()
	require.Len(t, published, 1)
	require.Equal(t, events.TopicItemCreated, published[0].Topic)
	evt, ok := published[0].Event.(events.ItemCreatedEvent)
	require.True(t, ok)
	require.Equal(t, item.ID, evt.ItemID)
	require.Equal(t, int64(80000), evt.PricePerDay)
}

func TestCreateItem_Refusals(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *fixture, in *CreateItemInput)
		wantErr error
	}{
		{"blank title", func(_ *fixture, in *CreateItemInput) { in.Title = "   " }, catalogdomain.ErrInvalidItemTitle},
		{"double space title", func(_ *fixture, in *CreateItemInput) { in.Title = "Silk  saree" }, catalogdomain.ErrInvalidItemTitle},
		{"zero price", func(_ *fixture, in *CreateItemInput) { in.PricePerDay = 0 }, catalogdomain.ErrInvalidPrice},
		{"negative deposit", func(_ *fixture, in *CreateItemInput) { in.SecurityDeposit = -1 }, catalogdomain.ErrInvalidPrice},
		{"price that wraps in paise", func(_ *fixture, in *CreateItemInput) { in.PricePerDay = 184467440737095517 }, catalogdomain.ErrInvalidPrice},
		{"price above ceiling", func(_ *fixture, in *CreateItemInput) { in.PricePerDay = money.MaxMajor + 1 }, catalogdomain.ErrInvalidPrice},
		{"deposit above ceiling", func(_ *fixture, in *CreateItemInput) { in.SecurityDeposit = money.MaxMajor + 1 }, catalogdomain.ErrInvalidPrice},
		{"unknown size", func(_ *fixture, in *CreateItemInput) { in.Size = "XXXL" }, catalogdomain.ErrInvalidSize},
		{"unknown category", func(_ *fixture, in *CreateItemInput) { in.CategoryID = uuid.New() }, catalogdomain.ErrCategoryNotFound},
		{"retired category", func(f *fixture, in *CreateItemInput) {
			require.NoError(f.t, f.categories.DeactivateCategory(f.ctx, "party"))
			in.CategoryID = f.party.ID
		}, catalogdomain.ErrCategoryInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := f.input("Velvet tuxedo", f.formal)
			tt.mutate(f, &in)

			_, err := f.items.CreateItem(f.ctx, in)
			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, f.store.Events())
		})
	}
}

func TestListItems_FiltersAndPages(t *testing.T) {
	f := newFixture(t)
	tux := f.mustCreate(f.input("Velvet tuxedo", f.formal))

	gown := f.input("Sequin gown", f.party)
	gown.Size = "S"
	gown.PricePerDay = 1500
	gown.City = "Pune"
	sequin := f.mustCreate(gown)

	blazer := f.input("Linen blazer", f.formal)
	blazer.PricePerDay = 400
	linen := f.mustCreate(blazer)

	tests := []struct {
		name   string
		filter models.ItemFilter
		want   []uuid.UUID
	}{
		{"all newest first", models.ItemFilter{}, []uuid.UUID{linen.ID, sequin.ID, tux.ID}},
		{"category", models.ItemFilter{CategorySlug: "formal"}, []uuid.UUID{linen.ID, tux.ID}},
		{"size", models.ItemFilter{Size: "S"}, []uuid.UUID{sequin.ID}},
		{"price band", models.ItemFilter{MinPrice: money.MustFromMajor(500), MaxPrice: money.MustFromMajor(1000)}, []uuid.UUID{tux.ID}},
		{"city ignores case", models.ItemFilter{City: "pune"}, []uuid.UUID{sequin.ID}},
		{"text search", models.ItemFilter{Search: "LINEN"}, []uuid.UUID{linen.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.items.ListItems(f.ctx, tt.filter, 1, 0)
			require.NoError(t, err)
			require.Equal(t, len(tt.want), page.Total)
			got := make([]uuid.UUID, len(page.Items))
			for i, item := range page.Items {
				got[i] = item.ID
			}
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("second page", func(t *testing.T) {
		page, err := f.items.ListItems(f.ctx, models.ItemFilter{}, 2, 2)
		require.NoError(t, err)
		require.Equal(t, 3, page.Total)
		require.Equal(t, 2, page.Page)
		require.Equal(t, 2, page.PerPage)
		require.Len(t, page.Items, 1)
		require.Equal(t, tux.ID, page.Items[0].ID)
	})

	t.Run("page size clamped", func(t *testing.T) {
		page, err := f.items.ListItems(f.ctx, models.ItemFilter{}, 0, 1000)
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, 100, page.PerPage)
	})
}

func TestGetItem_CountsViewsAndReadsThroughCache(t *testing.T) {
	f := newFixture(t)
	item := f.mustCreate(f.input("Velvet tuxedo", f.formal))

	got, err := f.items.GetItem(f.ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Views)
	require.Equal(t, "Formal Wear", got.CategoryName)
	f.awaitCached(item.ID)

	got, err = f.items.GetItem(f.ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Views, "views come from the store on cache hits")
	require.Equal(t, item.Title, got.Title)
	require.Equal(t, item.PricePerDay, got.PricePerDay)
	require.Equal(t, 2, f.store.Views(item.ID))
}

func TestGetItem_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.items.GetItem(f.ctx, uuid.New())
	require.ErrorIs(t, err, catalogdomain.ErrItemNotFound)
}

func TestDeactivateItem(t *testing.T) {
	f := newFixture(t)
	item := f.mustCreate(f.input("Velvet tuxedo", f.formal))

	err := f.items.DeactivateItem(f.ctx, item.ID, uuid.New())
	require.ErrorIs(t, err, catalogdomain.ErrPermission)

	require.NoError(t, f.items.DeactivateItem(f.ctx, item.ID, f.owner))
	require.Equal(t, []uuid.UUID{item.ID}, f.cache.deleted)

	_, err = f.items.GetItem(f.ctx, item.ID)
	require.ErrorIs(t, err, catalogdomain.ErrItemNotFound)

	page, err := f.items.ListItems(f.ctx, models.ItemFilter{}, 1, 0)
	require.NoError(t, err)
	require.Zero(t, page.Total)

	published := f.store.Events()
	require.Len(t, published, 2)
	require.Equal(t, events.TopicItemDeactivated, published[1].Topic)

	err = f.items.DeactivateItem(f.ctx, item.ID, f.owner)
	require.ErrorIs(t, err, catalogdomain.ErrItemNotFound)
}

func TestListOwnerItems(t *testing.T) {
	f := newFixture(t)
	first := f.mustCreate(f.input("Velvet tuxedo", f.formal))
	second := f.mustCreate(f.input("Sequin gown", f.party))
	other := f.input("Linen blazer", f.formal)
	other.OwnerID = uuid.New()
	f.mustCreate(other)

	items, err := f.items.ListOwnerItems(f.ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, second.ID, items[0].ID)
	require.Equal(t, first.ID, items[1].ID)
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(f.input("Party dress in red", f.party))
	f.mustCreate(f.input("Velvet tuxedo", f.formal))

	res, err := f.items.Search(f.ctx, " party ")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	require.Equal(t, []string{"Party Wear", "party dress"}, res.Suggestions)

	res, err = f.items.Search(f.ctx, "p")
	require.NoError(t, err)
	require.Empty(t, res.Items)
	require.Empty(t, res.Suggestions)
}
