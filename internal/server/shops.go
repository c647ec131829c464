package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	shopdomain "github.com/smallbiznis/ispdesk/internal/shop/domain"
)

type createShopRequest struct {
	Name     string `json:"name"`
	OwnerUID string `json:"ownerUid"`
}

func (s *Server) CreateShop(c *gin.Context) {
	var req createShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.shopSvc.Create(c.Request.Context(), shopdomain.CreateShopRequest{
		Name:     strings.TrimSpace(req.Name),
		OwnerUID: strings.TrimSpace(req.OwnerUID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetShop(c *gin.Context) {
	resp, err := s.shopSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
