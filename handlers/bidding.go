package handlers

import (
	"net/http"

	"chairbid/services/bidding"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BiddingHandler struct {
	Service bidding.BiddingService
}

func NewBiddingHandler(svc bidding.BiddingService) *BiddingHandler {
	return &BiddingHandler{Service: svc}
}

func (h *BiddingHandler) PlaceBid(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in bidding.PlaceBidInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	in.SlotID = c.Param("slotID")

	bid, err := h.Service.PlaceBid(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bid)
}

func (h *BiddingHandler) ListSlotBids(c *gin.Context) {
	bids, err := h.Service.ListSlotBids(c.Request.Context(), c.Param("slotID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

func (h *BiddingHandler) ListMyBids(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	bids, err := h.Service.ListMyBids(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

func (h *BiddingHandler) GetThread(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	thread, err := h.Service.GetThread(c.Request.Context(), actor, c.Param("bidID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// AcceptBid answers 200 with any best-effort warnings in the body. An accept
// whose booking insert failed answers with the error and the accepted bid.
func (h *BiddingHandler) AcceptBid(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	result, err := h.Service.AcceptBid(c.Request.Context(), actor, c.Param("bidID"))
	if err != nil {
		if result != nil {
			c.Header("X-Bid-Status", result.Bid.Status)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BiddingHandler) RejectBid(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	bid, err := h.Service.RejectBid(c.Request.Context(), actor, c.Param("bidID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bid)
}

func (h *BiddingHandler) WithdrawBid(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	bid, err := h.Service.WithdrawBid(c.Request.Context(), actor, c.Param("bidID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bid)
}

func (h *BiddingHandler) CounterBid(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in struct {
		Amount  decimal.Decimal `json:"amount"`
		Message string          `json:"message"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	counter, err := h.Service.CounterBid(c.Request.Context(), actor, c.Param("bidID"), in.Amount, in.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, counter)
}
