package handlers

import (
	"errors"
	"net/http"

	"energy-ledger/internal/api/models"
	"energy-ledger/internal/ledger"
	"energy-ledger/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps ledger and validation errors onto the API error shape.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		status, code = http.StatusNotFound, "ASSET_NOT_FOUND"
	case errors.Is(err, ledger.ErrAlreadyExists):
		status, code = http.StatusConflict, "ASSET_EXISTS"
	case errors.Is(err, model.ErrMalformedInput):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}
