package handlers

import (
	"encoding/json"
	"net/http"

	"auction-api/internal/middleware"
	"auction-api/internal/models"
	"auction-api/internal/repository"
	"auction-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type BidHandler struct {
	bidService *services.BidService
	logger     zerolog.Logger
}

func NewBidHandler(store repository.Store, logger zerolog.Logger) *BidHandler {
	return &BidHandler{
		bidService: services.NewBidService(store, logger),
		logger:     logger,
	}
}

func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	var req models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bid, err := h.bidService.Create(middleware.GetPrincipal(r), productID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, bid)
}

func (h *BidHandler) DeleteBid(w http.ResponseWriter, r *http.Request) {
	bidID := mux.Vars(r)["id"]

	if err := h.bidService.Delete(middleware.GetPrincipal(r), bidID); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
