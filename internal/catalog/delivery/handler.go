package delivery

import (
	"net/http"
	"strconv"
	"strings"

	"cinetrack-backend/internal/catalog/usecase"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
	}
}

func (h *CatalogHandler) Discover(c *gin.Context) {
	params := usecase.BrowseParams{
		Kind:   c.Param("kind"),
		SortBy: c.Query("sort"),
		Page:   queryInt(c, "page", 1),
		Year:   queryInt(c, "year", 0),
	}

	if genres := c.Query("genres"); genres != "" {
		for _, raw := range strings.Split(genres, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "genres must be a comma-separated list of ids"})
				return
			}
			params.Genres = append(params.Genres, id)
		}
	}

	page, err := h.catalogUsecase.Discover(c.Request.Context(), params)
	if err != nil {
		writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter required"})
		return
	}

	page, err := h.catalogUsecase.Search(c.Request.Context(), c.Param("kind"), query, queryInt(c, "page", 1))
	if err != nil {
		writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) Genres(c *gin.Context) {
	genres, err := h.catalogUsecase.Genres(c.Request.Context(), c.Param("kind"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

func (h *CatalogHandler) Details(c *gin.Context) {
	details, err := h.catalogUsecase.Details(c.Request.Context(), c.Param("kind"), c.Param("id"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *CatalogHandler) Credits(c *gin.Context) {
	credits, err := h.catalogUsecase.Credits(c.Request.Context(), c.Param("kind"), c.Param("id"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, credits)
}

func (h *CatalogHandler) Reviews(c *gin.Context) {
	reviews, err := h.catalogUsecase.Reviews(c.Request.Context(), c.Param("kind"), c.Param("id"), queryInt(c, "page", 1))
	if err != nil {
		writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *CatalogHandler) Similar(c *gin.Context) {
	similar, err := h.catalogUsecase.Similar(c.Request.Context(), c.Param("kind"), c.Param("id"), queryInt(c, "page", 1))
	if err != nil {
		writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, similar)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func writeCatalogError(c *gin.Context, err error) {
	msg := err.Error()
	if strings.Contains(msg, "unsupported") {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}
