package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	scandomain "github.com/smallharvest/herbport/internal/scan/domain"
)

type scanRequest struct {
	Code     string  `json:"code"`
	Type     string  `json:"type"`
	Location *string `json:"location"`
}

func (s *Server) ScanProduct(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.scanSvc.Record(c.Request.Context(), scandomain.RecordRequest{
		Code:     strings.TrimSpace(req.Code),
		Type:     catalogdomain.ScanKind(strings.ToLower(strings.TrimSpace(req.Type))),
		Location: req.Location,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProductScans(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
			return
		}
		limit = parsed
	}

	resp, err := s.scanSvc.History(c.Request.Context(), strings.TrimSpace(c.Param("id")), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
