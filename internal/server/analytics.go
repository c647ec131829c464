package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) Dashboard(c *gin.Context) {
	resp, err := s.analyticsSvc.Dashboard(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Analytics(c *gin.Context) {
	resp, err := s.analyticsSvc.Analytics(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Suggestions(c *gin.Context) {
	resp, err := s.analyticsSvc.Suggestions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SuggestionsPDF(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := s.analyticsSvc.Suggestions(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.reports.SuggestionsReport(ctx, view)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.DataFromReader(http.StatusOK, -1, "application/pdf", doc, map[string]string{
		"Content-Disposition": `attachment; filename="suggestions.pdf"`,
	})
}

type assistantRequest struct {
	Message string `json:"message"`
}

func (s *Server) Assistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.analyticsSvc.Assistant(c.Request.Context(), req.Message)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
