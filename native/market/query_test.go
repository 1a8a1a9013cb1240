package market

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculatePageParams(t *testing.T) {
	cases := []struct {
		name      string
		page      uint32
		limit     uint32
		total     uint32
		wantStart int
		wantEnd   int
	}{
		{name: "empty", page: 0, limit: 0, total: 0, wantStart: 0, wantEnd: 0},
		{name: "total below limit", page: 0, limit: 0, total: 7, wantStart: 0, wantEnd: 7},
		{name: "default limit full page", page: 0, limit: 0, total: 15, wantStart: 0, wantEnd: 10},
		{name: "default limit tail page", page: 1, limit: 0, total: 15, wantStart: 10, wantEnd: 15},
		{name: "limit below default clamps up", page: 0, limit: 3, total: 50, wantStart: 0, wantEnd: 10},
		{name: "limit above max clamps down", page: 0, limit: 500, total: 250, wantStart: 0, wantEnd: 100},
		{name: "even division last page", page: 1, limit: 10, total: 20, wantStart: 10, wantEnd: 20},
		{name: "uneven division last page", page: 3, limit: 10, total: 32, wantStart: 30, wantEnd: 32},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := CalculatePageParams(tc.page, tc.limit, tc.total)
			require.Equal(t, tc.wantStart, params.Start)
			require.Equal(t, tc.wantEnd, params.End)
			require.Equal(t, uint64(tc.total), params.Total)
			require.Equal(t, tc.page, params.Page)
		})
	}
}

func seedListings(t *testing.T, h *testHarness, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assetID := fmt.Sprintf("asset-%02d", i)
		h.registry.owners["collection1/"+assetID] = "seller1"
		msg := CreateMsg{
			ID:         fmt.Sprintf("sale-%02d", i),
			Collection: "collection1",
			AssetID:    assetID,
			Payment:    NativePayment(),
			Price:      big.NewInt(int64(100 * (i + 1))),
			Expires:    Expiration{Height: 500},
			Side:       SideSale,
		}
		_, err := h.engine.Create("seller1", msg)
		require.NoError(t, err)
	}
}

func TestGetListingsPagination(t *testing.T) {
	h := newTestHarness(t, defaultConfig())
	seedListings(t, h, 15)

	first, err := h.engine.GetListings(0, 0)
	require.NoError(t, err)
	require.Len(t, first.Swaps, 10)
	require.EqualValues(t, 15, first.Total)

	second, err := h.engine.GetListings(1, 0)
	require.NoError(t, err)
	require.Len(t, second.Swaps, 5)
	require.EqualValues(t, 15, second.Total)

	seen := make(map[string]bool)
	for _, record := range append(first.Swaps, second.Swaps...) {
		require.Falsef(t, seen[record.ID], "duplicate id across pages: %s", record.ID)
		seen[record.ID] = true
	}
	require.Len(t, seen, 15)
}

func TestListCursorPages(t *testing.T) {
	h := newTestHarness(t, defaultConfig())
	seedListings(t, h, 15)

	seen := make(map[string]bool)
	cursor := ""
	pages := 0
	for {
		ids, err := h.engine.List(cursor, 5)
		require.NoError(t, err)
		if len(ids) == 0 {
			break
		}
		pages++
		for _, id := range ids {
			require.Falsef(t, seen[id], "duplicate id across pages: %s", id)
			seen[id] = true
		}
		cursor = ids[len(ids)-1]
	}
	require.Equal(t, 3, pages)
	require.Len(t, seen, 15)
}

func TestGetTotalBySide(t *testing.T) {
	h := newTestHarness(t, defaultConfig())
	seedListings(t, h, 4)
	offer := CreateMsg{
		ID:         "offer-1",
		Collection: "collection1",
		AssetID:    "asset-00",
		Payment:    FungiblePayment("token1"),
		Price:      big.NewInt(50),
		Expires:    Expiration{Height: 500},
		Side:       SideOffer,
	}
	_, err := h.engine.Create("buyer1", offer)
	require.NoError(t, err)

	total, err := h.engine.GetTotal(nil)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)

	sale := SideSale
	total, err = h.engine.GetTotal(&sale)
	require.NoError(t, err)
	require.EqualValues(t, 4, total)

	offerSide := SideOffer
	total, err = h.engine.GetTotal(&offerSide)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	offers, err := h.engine.GetOffers(0, 0)
	require.NoError(t, err)
	require.Len(t, offers.Swaps, 1)
	require.Equal(t, "offer-1", offers.Swaps[0].ID)
}

func TestSwapsOf(t *testing.T) {
	h := newTestHarness(t, defaultConfig())
	seedListings(t, h, 3)
	h.registry.owners["collection2/asset-x"] = "seller2"
	msg := CreateMsg{
		ID:         "sale-x",
		Collection: "collection2",
		AssetID:    "asset-x",
		Payment:    NativePayment(),
		Price:      big.NewInt(1),
		Expires:    Expiration{Height: 500},
		Side:       SideSale,
	}
	_, err := h.engine.Create("seller2", msg)
	require.NoError(t, err)

	page, err := h.engine.SwapsOf("seller1", nil, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)

	page, err = h.engine.SwapsOf("seller2", nil, "collection2", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)

	page, err = h.engine.SwapsOf("seller2", nil, "collection1", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0, page.Total)
}

func TestSwapsByPrice(t *testing.T) {
	h := newTestHarness(t, defaultConfig())
	seedListings(t, h, 5) // prices 100..500

	page, err := h.engine.SwapsByPrice(big.NewInt(200), big.NewInt(400), nil, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)

	page, err = h.engine.SwapsByPrice(nil, nil, nil, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 5, page.Total)

	page, err = h.engine.SwapsByPrice(big.NewInt(501), nil, nil, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0, page.Total)
}

func TestSwapsByDenomAndPaymentType(t *testing.T) {
	h := newTestHarness(t, defaultConfig())
	seedListings(t, h, 2)
	h.registry.owners["collection1/asset-t"] = "seller1"
	msg := CreateMsg{
		ID:         "sale-token",
		Collection: "collection1",
		AssetID:    "asset-t",
		Payment:    FungiblePayment("token1"),
		Price:      big.NewInt(10),
		Expires:    Expiration{Height: 500},
		Side:       SideSale,
	}
	_, err := h.engine.Create("seller1", msg)
	require.NoError(t, err)

	page, err := h.engine.SwapsByDenom(NativePayment(), nil, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)

	page, err = h.engine.SwapsByDenom(FungiblePayment("token1"), nil, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)

	page, err = h.engine.SwapsByDenom(FungiblePayment("token2"), nil, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0, page.Total)

	page, err = h.engine.SwapsByPaymentType(true, nil, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)

	page, err = h.engine.SwapsByPaymentType(false, nil, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
}

func TestListingsOfToken(t *testing.T) {
	h := newTestHarness(t, defaultConfig())
	seedListings(t, h, 2)
	offer := CreateMsg{
		ID:         "offer-1",
		Collection: "collection1",
		AssetID:    "asset-00",
		Payment:    FungiblePayment("token1"),
		Price:      big.NewInt(50),
		Expires:    Expiration{Height: 500},
		Side:       SideOffer,
	}
	_, err := h.engine.Create("buyer1", offer)
	require.NoError(t, err)

	page, err := h.engine.ListingsOfToken("asset-00", "collection1", nil, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)

	offerSide := SideOffer
	page, err = h.engine.ListingsOfToken("asset-00", "collection1", &offerSide, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, "offer-1", page.Swaps[0].ID)

	page, err = h.engine.ListingsOfToken("asset-00", "collection2", nil, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0, page.Total)
}

func TestDetails(t *testing.T) {
	h := newTestHarness(t, defaultConfig())
	seedListings(t, h, 1)

	record, err := h.engine.Details("sale-00")
	require.NoError(t, err)
	require.Equal(t, "seller1", record.Creator)
	require.Equal(t, "asset-00", record.AssetID)

	_, err = h.engine.Details("missing")
	require.ErrorIs(t, err, ErrNotFound)
}
