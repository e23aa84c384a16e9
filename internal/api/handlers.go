package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luannguen/vrc-cms/internal/bulk"
	"github.com/luannguen/vrc-cms/internal/document"
)

const companyInfoSlug = "company-info"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleHomepage(c *gin.Context) {
	locale := c.Query("locale")

	view, err := s.homepage.BuildView(c.Request.Context(), locale, s.now())
	if err != nil {
		s.logger.Error("api.homepage.failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to build homepage",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) handleCompanyInfo(c *gin.Context) {
	locale := c.Query("locale")

	fields, err := s.homepage.ResolveGlobal(c.Request.Context(), companyInfoSlug, locale)
	if err != nil {
		if document.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "company info not configured",
			})
			return
		}
		s.logger.Error("api.company_info.failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to load company info",
		})
		return
	}

	c.JSON(http.StatusOK, fields)
}

func (s *Server) handleBulkDelete(c *gin.Context) {
	collection := c.Param("collection")
	if _, ok := bulkDeletable[collection]; !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "unknown collection",
		})
		return
	}

	class := callerClass(c)
	ids := bulk.ExtractIDs(c.Request.URL.Query())

	result, err := s.deleter.BulkDelete(c.Request.Context(), collection, ids)
	if err != nil {
		s.logger.Error("api.bulk_delete.failed", "collection", collection, "error", err)
		result = &bulk.Result{
			Status:  http.StatusInternalServerError,
			Message: "bulk delete failed",
		}
	}

	status, body := result.Render(class)
	c.JSON(status, body)
}

// callerClass distinguishes the admin UI from generic API consumers. The
// admin client always sends XMLHttpRequest and browses from an /admin path.
func callerClass(c *gin.Context) bulk.CallerClass {
	if strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest") {
		return bulk.CallerAdmin
	}
	if referer := c.GetHeader("Referer"); strings.Contains(referer, "/admin") {
		return bulk.CallerAdmin
	}
	return bulk.CallerAPI
}
