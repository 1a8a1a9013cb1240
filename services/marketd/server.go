package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"swapmarket/core/events"
	"swapmarket/native/market"
	"swapmarket/observability/metrics"
)

const callerHeader = "X-Market-Caller"

// Server wires the marketplace engine behind an HTTP API. All domain rules
// live in the engine; handlers only translate requests and map errors.
type Server struct {
	engine  *market.Engine
	state   *ChainState
	feed    *events.MemoryEmitter
	logger  *slog.Logger
	limiter *rate.Limiter
	market  *metrics.MarketMetrics

	router http.Handler
}

func NewServer(engine *market.Engine, state *ChainState, feed *events.MemoryEmitter, logger *slog.Logger, limiter *rate.Limiter) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		engine:  engine,
		state:   state,
		feed:    feed,
		logger:  logger,
		limiter: limiter,
		market:  metrics.Market(),
	}
	srv.router = srv.buildRouter()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.throttle)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(api chi.Router) {
		api.Post("/swaps", s.CreateSwap)
		api.Get("/swaps", s.ListSwaps)
		api.Get("/swaps/by-price", s.SwapsByPrice)
		api.Get("/swaps/by-denom", s.SwapsByDenom)
		api.Get("/swaps/by-payment", s.SwapsByPaymentType)
		api.Get("/swaps/{id}", s.GetSwap)
		api.Patch("/swaps/{id}", s.UpdateSwap)
		api.Delete("/swaps/{id}", s.CancelSwap)
		api.Post("/swaps/{id}/finish", s.FinishSwap)

		api.Get("/listings", s.GetListings)
		api.Get("/offers", s.GetOffers)
		api.Get("/total", s.GetTotal)
		api.Get("/tokens/{collection}/{asset}/swaps", s.ListingsOfToken)
		api.Get("/accounts/{address}/swaps", s.SwapsOf)

		api.Get("/config", s.GetConfig)
		api.Put("/config", s.UpdateConfig)
		api.Post("/collections/{collection}", s.AddCollection)
		api.Delete("/collections/{collection}", s.RemoveCollection)
		api.Post("/withdrawals", s.WithdrawFees)

		api.Get("/events", s.RecentEvents)

		api.Post("/state/owners", s.SetOwner)
		api.Post("/state/allowances", s.SetAllowance)
		api.Post("/state/balances", s.SetBalance)
	})

	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type expirationBody struct {
	Height uint64 `json:"height,omitempty"`
	Time   int64  `json:"time,omitempty"`
}

type createSwapRequest struct {
	ID           string         `json:"id"`
	Collection   string         `json:"collection"`
	AssetID      string         `json:"asset_id"`
	PaymentToken string         `json:"payment_token,omitempty"`
	Price        string         `json:"price"`
	Expires      expirationBody `json:"expires"`
	Side         string         `json:"side"`
}

type updateSwapRequest struct {
	Price   string         `json:"price"`
	Expires expirationBody `json:"expires"`
}

type finishSwapRequest struct {
	Funds []coinBody `json:"funds"`
}

type coinBody struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type swapBody struct {
	ID           string         `json:"id"`
	Creator      string         `json:"creator"`
	Collection   string         `json:"collection"`
	AssetID      string         `json:"asset_id"`
	PaymentToken string         `json:"payment_token,omitempty"`
	Price        string         `json:"price"`
	Expires      expirationBody `json:"expires"`
	Side         string         `json:"side"`
}

type pageBody struct {
	Swaps []swapBody `json:"swaps"`
	Page  uint32     `json:"page"`
	Total uint64     `json:"total"`
}

func swapToBody(record *market.SwapRecord) swapBody {
	body := swapBody{
		ID:         record.ID,
		Creator:    record.Creator,
		Collection: record.Collection,
		AssetID:    record.AssetID,
		Price:      record.Price.String(),
		Expires:    expirationBody{Height: record.Expires.Height, Time: record.Expires.Time},
		Side:       record.Side.String(),
	}
	if record.Payment.IsFungible() {
		body.PaymentToken = record.Payment.Token
	}
	return body
}

func pageToBody(page market.PageResult) pageBody {
	swaps := make([]swapBody, 0, len(page.Swaps))
	for _, record := range page.Swaps {
		swaps = append(swaps, swapToBody(record))
	}
	return pageBody{Swaps: swaps, Page: page.Page, Total: page.Total}
}

func intentToBody(intent market.TransferIntent) map[string]any {
	body := map[string]any{"kind": intent.IntentKind()}
	switch v := intent.(type) {
	case market.AssetTransferIntent:
		body["collection"] = v.Collection
		body["asset_id"] = v.AssetID
		body["recipient"] = v.Recipient
	case market.NativeSendIntent:
		funds := make([]coinBody, 0, len(v.Funds))
		for _, coin := range v.Funds {
			funds = append(funds, coinBody{Denom: coin.Denom, Amount: coin.Amount.String()})
		}
		body["recipient"] = v.Recipient
		body["funds"] = funds
	case market.TokenTransferFromIntent:
		body["token"] = v.Token
		body["owner"] = v.Owner
		body["recipient"] = v.Recipient
		body["amount"] = v.Amount.String()
	case market.TokenTransferIntent:
		body["token"] = v.Token
		body["recipient"] = v.Recipient
		body["amount"] = v.Amount.String()
	}
	return body
}

func (s *Server) CreateSwap(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req createSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	price, ok := parseAmount(req.Price)
	if !ok {
		http.Error(w, "invalid price", http.StatusBadRequest)
		return
	}
	side, err := market.ParseSide(req.Side)
	if err != nil {
		http.Error(w, "invalid side", http.StatusBadRequest)
		return
	}
	payment := market.NativePayment()
	if req.PaymentToken != "" {
		payment = market.FungiblePayment(req.PaymentToken)
	}
	record, err := s.engine.Create(caller, market.CreateMsg{
		ID:         req.ID,
		Collection: req.Collection,
		AssetID:    req.AssetID,
		Payment:    payment,
		Price:      price,
		Expires:    market.Expiration{Height: req.Expires.Height, Time: req.Expires.Time},
		Side:       side,
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.market.ObserveSwapCreated(record.Side.String())
	s.updateActiveSwaps()
	s.logger.Info("swap created", "id", record.ID, "side", record.Side.String(), "collection", record.Collection)
	s.writeJSON(w, http.StatusCreated, swapToBody(record))
}

func (s *Server) ListSwaps(w http.ResponseWriter, r *http.Request) {
	startAfter := r.URL.Query().Get("start_after")
	limit := queryUint32(r, "limit")
	ids, err := s.engine.List(startAfter, limit)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"swaps": ids})
}

func (s *Server) GetSwap(w http.ResponseWriter, r *http.Request) {
	record, err := s.engine.Details(chi.URLParam(r, "id"))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, swapToBody(record))
}

func (s *Server) UpdateSwap(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req updateSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	price, ok := parseAmount(req.Price)
	if !ok {
		http.Error(w, "invalid price", http.StatusBadRequest)
		return
	}
	expires := market.Expiration{Height: req.Expires.Height, Time: req.Expires.Time}
	record, err := s.engine.Update(caller, chi.URLParam(r, "id"), price, expires)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.market.ObserveSwapUpdated()
	s.writeJSON(w, http.StatusOK, swapToBody(record))
}

func (s *Server) CancelSwap(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	if err := s.engine.Cancel(caller, chi.URLParam(r, "id")); err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.market.ObserveSwapCancelled()
	s.updateActiveSwaps()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) FinishSwap(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req finishSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	funds := make([]market.Coin, 0, len(req.Funds))
	for _, coin := range req.Funds {
		amount, ok := parseAmount(coin.Amount)
		if !ok {
			http.Error(w, "invalid fund amount", http.StatusBadRequest)
			return
		}
		funds = append(funds, market.Coin{Denom: coin.Denom, Amount: amount})
	}
	id := chi.URLParam(r, "id")
	record, err := s.engine.Details(id)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	intents, err := s.engine.Finish(caller, id, funds)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.market.ObserveSwapFinished(record.Side.String())
	s.updateActiveSwaps()
	s.logger.Info("swap finished", "id", id, "side", record.Side.String())
	s.writeJSON(w, http.StatusOK, map[string]any{"transfers": intentsToBody(intents)})
}

func intentsToBody(intents []market.TransferIntent) []map[string]any {
	out := make([]map[string]any, 0, len(intents))
	for _, intent := range intents {
		out = append(out, intentToBody(intent))
	}
	return out
}

func (s *Server) GetListings(w http.ResponseWriter, r *http.Request) {
	page, err := s.engine.GetListings(queryUint32(r, "page"), queryUint32(r, "limit"))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pageToBody(page))
}

func (s *Server) GetOffers(w http.ResponseWriter, r *http.Request) {
	page, err := s.engine.GetOffers(queryUint32(r, "page"), queryUint32(r, "limit"))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pageToBody(page))
}

func (s *Server) GetTotal(w http.ResponseWriter, r *http.Request) {
	side, ok := querySide(w, r)
	if !ok {
		return
	}
	total, err := s.engine.GetTotal(side)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]uint64{"total": total})
}

func (s *Server) ListingsOfToken(w http.ResponseWriter, r *http.Request) {
	side, ok := querySide(w, r)
	if !ok {
		return
	}
	page, err := s.engine.ListingsOfToken(chi.URLParam(r, "asset"), chi.URLParam(r, "collection"), side, queryUint32(r, "page"), queryUint32(r, "limit"))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pageToBody(page))
}

func (s *Server) SwapsOf(w http.ResponseWriter, r *http.Request) {
	side, ok := querySide(w, r)
	if !ok {
		return
	}
	collection := r.URL.Query().Get("collection")
	page, err := s.engine.SwapsOf(chi.URLParam(r, "address"), side, collection, queryUint32(r, "page"), queryUint32(r, "limit"))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pageToBody(page))
}

func (s *Server) SwapsByPrice(w http.ResponseWriter, r *http.Request) {
	side, ok := querySide(w, r)
	if !ok {
		return
	}
	var minPrice, maxPrice *big.Int
	if raw := r.URL.Query().Get("min"); raw != "" {
		parsed, ok := parseAmount(raw)
		if !ok {
			http.Error(w, "invalid min", http.StatusBadRequest)
			return
		}
		minPrice = parsed
	}
	if raw := r.URL.Query().Get("max"); raw != "" {
		parsed, ok := parseAmount(raw)
		if !ok {
			http.Error(w, "invalid max", http.StatusBadRequest)
			return
		}
		maxPrice = parsed
	}
	collection := r.URL.Query().Get("collection")
	page, err := s.engine.SwapsByPrice(minPrice, maxPrice, side, collection, queryUint32(r, "page"), queryUint32(r, "limit"))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pageToBody(page))
}

func (s *Server) SwapsByDenom(w http.ResponseWriter, r *http.Request) {
	side, ok := querySide(w, r)
	if !ok {
		return
	}
	denom := market.NativePayment()
	if token := r.URL.Query().Get("token"); token != "" {
		denom = market.FungiblePayment(token)
	}
	collection := r.URL.Query().Get("collection")
	page, err := s.engine.SwapsByDenom(denom, side, collection, queryUint32(r, "page"), queryUint32(r, "limit"))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pageToBody(page))
}

func (s *Server) SwapsByPaymentType(w http.ResponseWriter, r *http.Request) {
	side, ok := querySide(w, r)
	if !ok {
		return
	}
	fungible := r.URL.Query().Get("fungible") == "true"
	collection := r.URL.Query().Get("collection")
	page, err := s.engine.SwapsByPaymentType(fungible, side, collection, queryUint32(r, "page"), queryUint32(r, "limit"))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pageToBody(page))
}

type configBody struct {
	Admin       string   `json:"admin"`
	Denom       string   `json:"denom"`
	FeePercent  uint64   `json:"fee_percent"`
	Collections []string `json:"collections"`
}

func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engine.Config()
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, configBody{
		Admin:       cfg.Admin,
		Denom:       cfg.Denom,
		FeePercent:  cfg.FeePercent,
		Collections: cfg.Collections,
	})
}

func (s *Server) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req configBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	err := s.engine.UpdateConfig(caller, market.Config{
		Admin:       req.Admin,
		Denom:       req.Denom,
		FeePercent:  req.FeePercent,
		Collections: req.Collections,
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AddCollection(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	if err := s.engine.AddCollection(caller, chi.URLParam(r, "collection")); err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) RemoveCollection(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	if err := s.engine.RemoveCollection(caller, chi.URLParam(r, "collection")); err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type withdrawRequest struct {
	Amount       string `json:"amount"`
	Denom        string `json:"denom,omitempty"`
	PaymentToken string `json:"payment_token,omitempty"`
}

func (s *Server) WithdrawFees(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}
	intents, err := s.engine.WithdrawFees(caller, amount, req.Denom, req.PaymentToken)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.market.ObserveFeeWithdrawal()
	s.writeJSON(w, http.StatusOK, map[string]any{"transfers": intentsToBody(intents)})
}

func (s *Server) RecentEvents(w http.ResponseWriter, r *http.Request) {
	recent := s.feed.Recent()
	out := make([]map[string]any, 0, len(recent))
	for _, evt := range recent {
		entry := map[string]any{"type": evt.EventType()}
		if attributed, ok := evt.(*events.Attributed); ok {
			entry["attributes"] = attributed.Attributes
		}
		out = append(out, entry)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

type ownerRequest struct {
	Collection string `json:"collection"`
	AssetID    string `json:"asset_id"`
	Owner      string `json:"owner"`
}

func (s *Server) SetOwner(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req ownerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Collection == "" || req.AssetID == "" || req.Owner == "" {
		http.Error(w, "collection, asset_id and owner required", http.StatusBadRequest)
		return
	}
	if err := s.state.SetOwner(req.Collection, req.AssetID, req.Owner); err != nil {
		http.Error(w, "failed to store owner", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type allowanceRequest struct {
	Token   string `json:"token"`
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

func (s *Server) SetAllowance(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req allowanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}
	if err := s.state.SetAllowance(req.Token, req.Owner, req.Spender, amount); err != nil {
		http.Error(w, "failed to store allowance", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type balanceRequest struct {
	Account string `json:"account"`
	Denom   string `json:"denom"`
	Amount  string `json:"amount"`
}

func (s *Server) SetBalance(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req balanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}
	if err := s.state.SetBalance(req.Account, req.Denom, amount); err != nil {
		http.Error(w, "failed to store balance", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireAdmin resolves the caller header and checks it against the
// configured marketplace admin. The state sync endpoints rewrite the views
// the engine authorizes against, so they are admin-only.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller, ok := s.requireCaller(w, r)
	if !ok {
		return "", false
	}
	cfg, err := s.engine.Config()
	if err != nil {
		s.writeEngineError(w, r, err)
		return "", false
	}
	if caller != cfg.Admin {
		http.Error(w, "admin only", http.StatusForbidden)
		return "", false
	}
	return caller, true
}

// updateActiveSwaps refreshes the open-swap gauge after a mutation. Metric
// staleness is tolerable; ledger errors here never fail the request.
func (s *Server) updateActiveSwaps() {
	total, err := s.engine.GetTotal(nil)
	if err != nil {
		return
	}
	s.market.SetActiveSwaps(float64(total))
}

func (s *Server) requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := strings.TrimSpace(r.Header.Get(callerHeader))
	if caller == "" {
		http.Error(w, "missing caller identity", http.StatusUnauthorized)
		return "", false
	}
	return caller, true
}

func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, market.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, market.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, market.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, market.ErrExpired):
		status = http.StatusGone
	case errors.Is(err, market.ErrInsufficientFunds),
		errors.Is(err, market.ErrInsufficientBalance),
		errors.Is(err, market.ErrExactFundsMismatch):
		status = http.StatusPaymentRequired
	case errors.Is(err, market.ErrInvalidInput),
		errors.Is(err, market.ErrInvalidPaymentToken):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err.Error())
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseAmount(raw string) (*big.Int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}
	amount, ok := new(big.Int).SetString(trimmed, 10)
	if !ok || amount.Sign() < 0 {
		return nil, false
	}
	return amount, true
}

func queryUint32(r *http.Request, key string) uint32 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(parsed)
}

func querySide(w http.ResponseWriter, r *http.Request) (*market.Side, bool) {
	raw := r.URL.Query().Get("side")
	if raw == "" {
		return nil, true
	}
	side, err := market.ParseSide(raw)
	if err != nil {
		http.Error(w, "invalid side", http.StatusBadRequest)
		return nil, false
	}
	return &side, true
}
