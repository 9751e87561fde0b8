package handlers

import (
	"io"
	"net/http"
	"time"

	"chairbid/services/auction"
	"chairbid/services/events"
	"chairbid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// streamKeepAlive is how often an idle event stream sends a ping.
const streamKeepAlive = 15 * time.Second

type AuctionHandler struct {
	Service auction.AuctionService
	Events  events.Subscriber
}

func NewAuctionHandler(svc auction.AuctionService, sub events.Subscriber) *AuctionHandler {
	return &AuctionHandler{Service: svc, Events: sub}
}

func (h *AuctionHandler) OpenAuction(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in auction.OpenInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.Service.OpenAuction(c.Request.Context(), actor, c.Param("slotID"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AuctionHandler) GetAuction(c *gin.Context) {
	snap, err := h.Service.Snapshot(c.Request.Context(), c.Param("slotID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// StreamAuction sends the current snapshot and then relays live bid events
// as server-sent events until the client goes away.
func (h *AuctionHandler) StreamAuction(c *gin.Context) {
	slotID := c.Param("slotID")
	if h.Events == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Live updates unavailable", "")
		return
	}

	// Subscribe before reading the snapshot so no bid falls between the two.
	ctx := c.Request.Context()
	feed, unsubscribe, err := h.Events.Subscribe(ctx, slotID)
	if err != nil {
		getLogger(c).Error("Auction subscribe failed", zap.String("slot_id", slotID), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Live updates unavailable", "")
		return
	}
	defer func() {
		if err := unsubscribe(); err != nil {
			getLogger(c).Debug("Auction unsubscribe failed", zap.String("slot_id", slotID), zap.Error(err))
		}
	}()

	snap, err := h.Service.Snapshot(ctx, slotID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", snap)
	c.Writer.Flush()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-feed:
			if !ok {
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		case t := <-ticker.C:
			c.SSEvent("ping", t.UTC().Format(time.RFC3339))
			return true
		}
	})
}
