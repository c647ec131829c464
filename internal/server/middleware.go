package server

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/ispdesk/internal/observability/context"
	shopdomain "github.com/smallbiznis/ispdesk/internal/shop/domain"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
)

const HeaderShop = "X-Shop-ID"

// ShopRequired resolves the tenant from the X-Shop-ID header. Unknown shops
// are rejected like a missing header.
func (s *Server) ShopRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := strings.TrimSpace(c.GetHeader(HeaderShop))
		if shopID == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if _, err := s.shopSvc.GetByID(c.Request.Context(), shopID); err != nil {
			if errors.Is(err, shopdomain.ErrNotFound) {
				err = ErrUnauthorized
			}
			AbortWithError(c, err)
			return
		}

		ctx := shopcontext.WithShopID(c.Request.Context(), shopID)
		ctx = obscontext.WithShopID(ctx, shopID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
