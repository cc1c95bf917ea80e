package delivery

import (
	"errors"
	"net/http"

	authdelivery "cinetrack-backend/internal/auth/delivery"
	bookmarkdto "cinetrack-backend/internal/bookmark/dto"
	"cinetrack-backend/internal/bookmark/usecase"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	bookmarkUsecase usecase.BookmarkUsecase
}

func NewBookmarkHandler(bookmarkUsecase usecase.BookmarkUsecase) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkUsecase: bookmarkUsecase,
	}
}

func (h *BookmarkHandler) List(c *gin.Context) {
	uid := c.GetString("userID")

	bookmarks, err := h.bookmarkUsecase.List(c.Request.Context(), uid)
	if err != nil {
		writeBookmarkError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookmarkdto.BookmarksResponse{Bookmarks: bookmarks})
}

func (h *BookmarkHandler) Toggle(c *gin.Context) {
	var req bookmarkdto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := ""
	if identity := authdelivery.IdentityFromContext(c); identity != nil {
		uid = identity.UID
	}

	if err := h.bookmarkUsecase.Toggle(c.Request.Context(), uid, req.Bookmark, req.Bookmarked); err != nil {
		writeBookmarkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": !req.Bookmarked})
}

func (h *BookmarkHandler) BatchRemove(c *gin.Context) {
	var req bookmarkdto.BatchRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := ""
	if identity := authdelivery.IdentityFromContext(c); identity != nil {
		uid = identity.UID
	}

	if err := h.bookmarkUsecase.RemoveMany(c.Request.Context(), uid, req.Bookmarks); err != nil {
		writeBookmarkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": len(req.Bookmarks)})
}

func writeBookmarkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "must sign in to use this feature"})
	case errors.Is(err, usecase.ErrInvalidMediaKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrMutationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
