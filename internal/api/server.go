package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ZilDuck/nft-marketplace-engine/internal/marketplace"
	"github.com/ZilDuck/nft-marketplace-engine/internal/registry"
	"github.com/ZilDuck/nft-marketplace-engine/internal/repository"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Server exposes every caller-facing marketplace operation over JSON HTTP.
// The caller principal travels in the request body; value attached to an
// operation travels as the amount field.
type Server struct {
	registry registry.AssetRegistry
	market   *marketplace.Marketplace
	actions  repository.NftActionRepository
}

func NewServer(assetRegistry registry.AssetRegistry, market *marketplace.Marketplace, actions repository.NftActionRepository) Server {
	return Server{assetRegistry, market, actions}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/time", s.handleGetTime).Methods("GET")

	r.HandleFunc("/collections", s.handleCreateCollection).Methods("POST")
	r.HandleFunc("/collections/{collectionId}", s.handleGetCollection).Methods("GET")
	r.HandleFunc("/collections/{collectionId}/activate", s.handleActivateCollection).Methods("POST")
	r.HandleFunc("/collections/{collectionId}/deactivate", s.handleDeactivateCollection).Methods("POST")
	r.HandleFunc("/collections/{collectionId}/nfts", s.handleMintNft).Methods("POST")

	r.HandleFunc("/nfts/{tokenId}", s.handleGetNft).Methods("GET")
	r.HandleFunc("/nfts/{tokenId}/transfer", s.handleTransferNft).Methods("POST")
	r.HandleFunc("/nfts/{tokenId}/actions", s.handleGetActions).Methods("GET")

	r.HandleFunc("/nfts/{tokenId}/sell", s.handleSellNft).Methods("POST")
	r.HandleFunc("/nfts/{tokenId}/sell", s.handleCancelSell).Methods("DELETE")
	r.HandleFunc("/nfts/{tokenId}/buy", s.handleBuyNft).Methods("POST")

	r.HandleFunc("/nfts/{tokenId}/auction", s.handleCreateAuction).Methods("POST")
	r.HandleFunc("/nfts/{tokenId}/auction", s.handleCancelAuction).Methods("DELETE")
	r.HandleFunc("/nfts/{tokenId}/bids", s.handlePlaceBid).Methods("POST")
	r.HandleFunc("/nfts/{tokenId}/finalize", s.handleFinalizeAuction).Methods("POST")
	r.HandleFunc("/nfts/{tokenId}/listing", s.handleGetListing).Methods("GET")

	r.HandleFunc("/balances/{principal}", s.handleGetBalance).Methods("GET")

	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "NFT Marketplace Engine")
}

func (s Server) handleGetTime(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]int64{"time": s.market.GetCurrentTime()})
}

func (s Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Owner string `json:"owner"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	collection, err := s.registry.CreateCollection(req.Name, req.Owner)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, collection)
}

func (s Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	collectionId, err := pathId(r, "collectionId")
	if err != nil {
		http.Error(w, "invalid collection id", http.StatusBadRequest)
		return
	}

	collection, err := s.registry.GetCollection(collectionId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, collection)
}

func (s Server) handleActivateCollection(w http.ResponseWriter, r *http.Request) {
	s.setCollectionActive(w, r, true)
}

func (s Server) handleDeactivateCollection(w http.ResponseWriter, r *http.Request) {
	s.setCollectionActive(w, r, false)
}

func (s Server) setCollectionActive(w http.ResponseWriter, r *http.Request, active bool) {
	collectionId, err := pathId(r, "collectionId")
	if err != nil {
		http.Error(w, "invalid collection id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller string `json:"caller"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if active {
		err = s.registry.ActivateCollection(collectionId, req.Caller)
	} else {
		err = s.registry.DeactivateCollection(collectionId, req.Caller)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]bool{"active": active})
}

func (s Server) handleMintNft(w http.ResponseWriter, r *http.Request) {
	collectionId, err := pathId(r, "collectionId")
	if err != nil {
		http.Error(w, "invalid collection id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller string `json:"caller"`
		Name   string `json:"name"`
		Price  string `json:"price"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		http.Error(w, "invalid price", http.StatusBadRequest)
		return
	}

	nft, err := s.registry.MintNft(collectionId, req.Caller, req.Name, price)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, nft)
}

func (s Server) handleGetNft(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	nft, err := s.registry.GetNft(tokenId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, nft)
}

func (s Server) handleTransferNft(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller string `json:"caller"`
		To     string `json:"to"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.registry.Transfer(tokenId, req.Caller, req.To); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]string{"owner": req.To})
}

func (s Server) handleGetActions(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	actions, err := s.actions.GetActions(tokenId)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("tokenId", tokenId)).Warn("Api: Failed to get actions")
		http.Error(w, "actions not available", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, actions)
}

func (s Server) handleSellNft(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller string `json:"caller"`
		Price  string `json:"price"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		http.Error(w, "invalid price", http.StatusBadRequest)
		return
	}

	listing, err := s.market.SellNFT(tokenId, req.Caller, price)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, listing)
}

func (s Server) handleCancelSell(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller string `json:"caller"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.market.CancelSell(tokenId, req.Caller); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]string{"mode": "none"})
}

func (s Server) handleBuyNft(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller string `json:"caller"`
		Amount string `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	if err := s.market.BuyNFT(tokenId, req.Caller, amount); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]string{"owner": req.Caller})
}

func (s Server) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller        string `json:"caller"`
		StartingPrice string `json:"startingPrice"`
		StartTime     int64  `json:"startTime"`
		EndTime       int64  `json:"endTime"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	startingPrice, err := decimal.NewFromString(req.StartingPrice)
	if err != nil {
		http.Error(w, "invalid starting price", http.StatusBadRequest)
		return
	}

	listing, err := s.market.CreateAuction(tokenId, req.Caller, startingPrice, req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, listing)
}

func (s Server) handleCancelAuction(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller string `json:"caller"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.market.CancelAuction(tokenId, req.Caller); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]string{"mode": "none"})
}

func (s Server) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller string `json:"caller"`
		Amount string `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	if err := s.market.PlaceBid(tokenId, req.Caller, amount); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]string{"bidder": req.Caller, "amount": amount.String()})
}

func (s Server) handleFinalizeAuction(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	var req struct {
		Caller string `json:"caller"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	settlement, err := s.market.FinalizeAuction(tokenId, req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, settlement)
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	listing, err := s.market.GetListing(tokenId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, listing)
}

func (s Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	principal, ok := mux.Vars(r)["principal"]
	if !ok {
		http.Error(w, "invalid principal", http.StatusBadRequest)
		return
	}

	writeJson(w, http.StatusOK, map[string]string{
		"principal": principal,
		"balance":   s.market.EscrowBalanceOf(principal).String(),
	})
}

func pathId(r *http.Request, name string) (uint64, error) {
	value, ok := mux.Vars(r)[name]
	if !ok {
		return 0, errors.New("invalid parameters")
	}

	return strconv.ParseUint(value, 10, 64)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	return true
}

func writeJson(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	var merr *marketplace.Error
	if errors.As(err, &merr) {
		writeJson(w, statusForKind(merr.Kind), map[string]string{
			"error": merr.Error(),
			"kind":  string(merr.Kind),
			"field": merr.Field,
		})
		return
	}

	status := http.StatusBadRequest
	switch {
	case errors.Is(err, registry.ErrCollectionNotFound), errors.Is(err, registry.ErrNftNotFound):
		status = http.StatusNotFound
	case errors.Is(err, registry.ErrNotCollectionOwner), errors.Is(err, registry.ErrNotNftOwner):
		status = http.StatusForbidden
	}

	writeJson(w, status, map[string]string{"error": err.Error()})
}

func statusForKind(kind marketplace.ErrorKind) int {
	switch kind {
	case marketplace.Authorization:
		return http.StatusForbidden
	case marketplace.StateConflict:
		return http.StatusConflict
	case marketplace.Integrity:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
