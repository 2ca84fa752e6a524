package handlers

import (
	"net/http"

	"energy-ledger/internal/api/models"
	"energy-ledger/internal/model"
	"energy-ledger/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssetHandler handles asset lifecycle requests
type AssetHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(svc *service.Service, logger *zap.Logger) *AssetHandler {
	return &AssetHandler{svc: svc, logger: logger.Named("assets")}
}

// InitLedger handles POST /api/v1/ledger/init
func (h *AssetHandler) InitLedger(c *gin.Context) {
	if err := h.svc.InitLedger(); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.ListAssets(c)
}

// ListAssets handles GET /api/v1/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	all, err := h.svc.GetAllAssets()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	views := make([]models.AssetView, 0, len(all))
	for _, a := range all {
		views = append(views, assetView(a))
	}
	c.JSON(http.StatusOK, models.AssetListResponse{Assets: views})
}

// ViewAssets handles GET /api/v1/assets/view
func (h *AssetHandler) ViewAssets(c *gin.Context) {
	text, err := h.svc.ViewAllAssets()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.TextResponse{Result: text})
}

// CreateAsset handles POST /api/v1/assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	curr := req.CurrValue
	if curr == nil {
		curr = req.OrgValue
	}
	a, err := h.svc.CreateAsset(req.ID, req.Name, req.Type, req.OrgValue, curr)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, models.AssetResponse{Asset: assetView(a)})
}

// ReadAsset handles GET /api/v1/assets/:id
func (h *AssetHandler) ReadAsset(c *gin.Context) {
	a, err := h.svc.ReadAsset(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.AssetResponse{Asset: assetView(a)})
}

// UpdateAsset handles PUT /api/v1/assets/:id
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req models.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.svc.UpdateAsset(c.Param("id"), req.Name, req.Type, req.OrgValue, req.CurrValue)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.AssetResponse{Asset: assetView(a)})
}

// DeleteAsset handles DELETE /api/v1/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.svc.DeleteAsset(c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssetExists handles GET /api/v1/assets/:id/exists
func (h *AssetHandler) AssetExists(c *gin.Context) {
	id := c.Param("id")
	ok, err := h.svc.AssetExists(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.ExistsResponse{ID: id, Exists: ok})
}

// TransferAsset handles POST /api/v1/assets/:id/transfer
func (h *AssetHandler) TransferAsset(c *gin.Context) {
	var req models.TransferAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	old, err := h.svc.TransferAsset(id, req.NewOwner)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.TransferResponse{ID: id, OldOwner: old, NewOwner: req.NewOwner})
}

// Summary handles GET /api/v1/summary
func (h *AssetHandler) Summary(c *gin.Context) {
	b, err := h.svc.Summary()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func assetView(a model.Asset) models.AssetView {
	return models.AssetView{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		OrgValue:  a.OrgValue.String(),
		CurrValue: a.CurrValue.String(),
		Owner:     a.Owner,
	}
}
