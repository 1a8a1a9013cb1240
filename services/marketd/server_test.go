package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"swapmarket/core/events"
	"swapmarket/native/market"
	"swapmarket/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db := storage.NewMemDB()
	state := NewChainState(db)
	feed := events.NewMemoryEmitter(eventFeedDepth)

	engine := market.NewEngine(db)
	engine.SetRegistry(state)
	engine.SetTokenLedger(state)
	engine.SetBank(state)
	engine.SetEmitter(feed)
	engine.SetMarketAccount("market1contract")
	engine.SetBlockFunc(func() market.BlockInfo {
		return market.BlockInfo{Height: 100, Time: 1_700_000_000}
	})
	if err := engine.Initialize(market.Config{Admin: "admin1", Denom: "uarch", FeePercent: 5}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return NewServer(engine, state, feed, nil, nil)
}

func doJSON(t *testing.T, srv *Server, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if caller != "" {
		req.Header.Set(callerHeader, caller)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func seedSale(t *testing.T, srv *Server, id, assetID, price string) {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/v1/state/owners", "admin1", ownerRequest{
		Collection: "collection1",
		AssetID:    assetID,
		Owner:      "seller1",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("seed owner: status %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodPost, "/v1/swaps", "seller1", createSwapRequest{
		ID:         id,
		Collection: "collection1",
		AssetID:    assetID,
		Price:      price,
		Expires:    expirationBody{Time: 1_800_000_000},
		Side:       "sale",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create sale: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestCreateSwapRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	seedSale(t, srv, "sale-1", "asset1", "1000")

	rec := doJSON(t, srv, http.MethodGet, "/v1/swaps/sale-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get swap: status %d", rec.Code)
	}
	var body swapBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Creator != "seller1" || body.Price != "1000" || body.Side != "sale" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing request id header")
	}
}

func TestCreateSwapRequiresCaller(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/swaps", "", createSwapRequest{ID: "sale-1"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateSaleByNonOwnerForbidden(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/state/owners", "admin1", ownerRequest{
		Collection: "collection1",
		AssetID:    "asset1",
		Owner:      "seller1",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("seed owner: status %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodPost, "/v1/swaps", "mallory1", createSwapRequest{
		ID:         "sale-1",
		Collection: "collection1",
		AssetID:    "asset1",
		Price:      "1000",
		Expires:    expirationBody{Time: 1_800_000_000},
		Side:       "sale",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestFinishSwapSettlesAndRemoves(t *testing.T) {
	srv := newTestServer(t)
	seedSale(t, srv, "sale-1", "asset1", "100")

	rec := doJSON(t, srv, http.MethodPost, "/v1/swaps/sale-1/finish", "buyer1", finishSwapRequest{
		Funds: []coinBody{{Denom: "uarch", Amount: "100"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("finish: status %d body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Transfers []map[string]any `json:"transfers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Transfers) != 2 {
		t.Fatalf("expected 2 transfer intents, got %d", len(body.Transfers))
	}
	if body.Transfers[0]["kind"] != "asset_transfer" {
		t.Fatalf("first intent should move the asset: %+v", body.Transfers[0])
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/swaps/sale-1", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("settled swap should be gone, got %d", rec.Code)
	}
}

func TestFinishSwapInsufficientFunds(t *testing.T) {
	srv := newTestServer(t)
	seedSale(t, srv, "sale-1", "asset1", "100")

	rec := doJSON(t, srv, http.MethodPost, "/v1/swaps/sale-1/finish", "buyer1", finishSwapRequest{
		Funds: []coinBody{{Denom: "uarch", Amount: "99"}},
	})
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestListingsAndListEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 3; i++ {
		seedSale(t, srv, fmt.Sprintf("sale-%d", i), fmt.Sprintf("asset-%d", i), "100")
	}

	rec := doJSON(t, srv, http.MethodGet, "/v1/listings", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("listings: status %d", rec.Code)
	}
	var page pageBody
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 3 || len(page.Swaps) != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/swaps?limit=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var ids struct {
		Swaps []string `json:"swaps"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ids); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ids.Swaps) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids.Swaps)
	}
}

func TestConfigEndpointsAdminOnly(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/config", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get config: status %d", rec.Code)
	}
	var cfg configBody
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Admin != "admin1" || cfg.FeePercent != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	rec = doJSON(t, srv, http.MethodPost, "/v1/collections/collection9", "mallory1", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodPost, "/v1/collections/collection9", "admin1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("add collection: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestStateEndpointsAdminOnly(t *testing.T) {
	srv := newTestServer(t)
	body := ownerRequest{Collection: "collection1", AssetID: "asset1", Owner: "seller1"}

	rec := doJSON(t, srv, http.MethodPost, "/v1/state/owners", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without caller, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodPost, "/v1/state/owners", "mallory1", body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodPost, "/v1/state/owners", "admin1", body)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", rec.Code)
	}

	allowance := allowanceRequest{Token: "token1", Owner: "buyer1", Spender: "market1contract", Amount: "100"}
	rec = doJSON(t, srv, http.MethodPost, "/v1/state/allowances", "mallory1", allowance)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin allowance write, got %d", rec.Code)
	}
	balance := balanceRequest{Account: "market1contract", Denom: "uarch", Amount: "50"}
	rec = doJSON(t, srv, http.MethodPost, "/v1/state/balances", "mallory1", balance)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin balance write, got %d", rec.Code)
	}
}

func TestActiveSwapsGaugeTracksLedger(t *testing.T) {
	srv := newTestServer(t)
	seedSale(t, srv, "sale-1", "asset1", "100")

	rec := doJSON(t, srv, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "market_active_swaps 1") {
		t.Fatal("gauge should report one open swap after create")
	}

	rec = doJSON(t, srv, http.MethodDelete, "/v1/swaps/sale-1", "seller1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("cancel: status %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/metrics", "", nil)
	if !strings.Contains(rec.Body.String(), "market_active_swaps 0") {
		t.Fatal("gauge should report zero open swaps after cancel")
	}
}

func TestEventFeed(t *testing.T) {
	srv := newTestServer(t)
	seedSale(t, srv, "sale-1", "asset1", "100")

	rec := doJSON(t, srv, http.MethodGet, "/v1/events", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("events: status %d", rec.Code)
	}
	var body struct {
		Events []map[string]any `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(body.Events))
	}
	if body.Events[0]["type"] != "market.swap.created" {
		t.Fatalf("unexpected event type: %v", body.Events[0]["type"])
	}
}
