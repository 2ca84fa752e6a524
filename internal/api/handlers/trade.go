package handlers

import (
	"fmt"
	"net/http"

	"energy-ledger/internal/api/models"
	"energy-ledger/internal/model"
	"energy-ledger/internal/service"
	"energy-ledger/internal/trading"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TradeHandler handles trading and grid requests
type TradeHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(svc *service.Service, logger *zap.Logger) *TradeHandler {
	return &TradeHandler{svc: svc, logger: logger.Named("trade")}
}

// Trade handles POST /api/v1/trade
func (h *TradeHandler) Trade(c *gin.Context) {
	var req models.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if *req.N < 0 {
		badRequest(c, fmt.Errorf("%w: n must be >= 0", model.ErrMalformedInput))
		return
	}

	report, err := h.svc.Trade(*req.N)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := models.TradeResponse{
		Result:       report.String(),
		NetGridDelta: report.Result.NetGridDelta.String(),
		GridPower:    report.Grid.String(),
		Settlements:  make([]models.SettlementView, 0, len(report.Result.Rows)),
		Log:          make([]string, 0, len(report.Entries)),
	}
	for _, r := range report.Result.Rows {
		resp.Settlements = append(resp.Settlements, models.SettlementView{
			Index:          r.Index,
			ProducerID:     r.ProducerID,
			ConsumerID:     r.ConsumerID,
			Outcome:        string(r.Outcome),
			ProducerBefore: r.ProducerBefore.String(),
			ProducerAfter:  r.ProducerAfter.String(),
			ConsumerBefore: r.ConsumerBefore.String(),
			ConsumerAfter:  r.ConsumerAfter.String(),
			GridDelta:      r.GridDelta.String(),
		})
	}
	for _, e := range report.Entries {
		resp.Log = append(resp.Log, e.String())
	}
	c.JSON(http.StatusOK, resp)
}

// ViewRatios handles GET /api/v1/ratios
func (h *TradeHandler) ViewRatios(c *gin.Context) {
	ratios, err := h.svc.Ratios()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := models.RatiosResponse{Result: trading.FormatRatios(ratios), Ratios: make([]models.RatioView, 0, len(ratios))}
	for _, r := range ratios {
		v := models.RatioView{Producer: r.ProducerID, Consumer: r.ConsumerID, Defined: r.Defined}
		if r.Defined {
			s := r.Value.String()
			v.Ratio = &s
		}
		resp.Ratios = append(resp.Ratios, v)
	}
	c.JSON(http.StatusOK, resp)
}

// ViewTransactionLog handles GET /api/v1/txlog
func (h *TradeHandler) ViewTransactionLog(c *gin.Context) {
	entries, err := h.svc.TransactionLog()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := models.LogResponse{Result: model.JoinLog(entries), Entries: make([]models.LogEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, models.LogEntry{Seq: e.Seq, Timestamp: e.Timestamp, Message: e.Message})
	}
	c.JSON(http.StatusOK, resp)
}

// ViewCurrentGridPower handles GET /api/v1/grid
func (h *TradeHandler) ViewCurrentGridPower(c *gin.Context) {
	g, err := h.svc.GridPower()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.GridResponse{
		Result: "Current grid power is " + g.String(),
		Power:  g.Power.String(),
		Unit:   g.Unit,
	})
}
