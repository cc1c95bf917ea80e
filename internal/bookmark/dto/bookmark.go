package dto

import profiledomain "cinetrack-backend/internal/profile/domain"

type ToggleRequest struct {
	Bookmark   profiledomain.Bookmark `json:"bookmark" binding:"required"`
	Bookmarked bool                   `json:"bookmarked"`
}

type BatchRemoveRequest struct {
	Bookmarks []profiledomain.Bookmark `json:"bookmarks" binding:"required"`
}

type BookmarksResponse struct {
	Bookmarks []profiledomain.Bookmark `json:"bookmarks"`
}
