package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photofeed/internal/middleware"
	"photofeed/internal/models"
	"photofeed/internal/repository"
)

// feedEntry is one rendered photo with its comments.
type feedEntry struct {
	models.PhotoWithOwner
	Comments []models.CommentWithAuthor
}

// Feed renders all photos newest-first, or the search results when a term
// is supplied.
func (h HandlerSet) Feed(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var (
		photos []models.PhotoWithOwner
		err    error
	)
	query := c.Query("q")
	if query != "" {
		photos, err = h.photos.Search(c.Request.Context(), query)
	} else {
		photos, err = h.photos.ListNewest(c.Request.Context())
	}
	if err != nil {
		h.internalError(c, err, "feed query failed")
		return
	}

	entries := make([]feedEntry, 0, len(photos))
	for _, photo := range photos {
		comments, err := h.comments.ListByPhoto(c.Request.Context(), photo.ID)
		if err != nil {
			h.internalError(c, err, "comments query failed")
			return
		}
		entries = append(entries, feedEntry{PhotoWithOwner: photo, Comments: comments})
	}

	c.HTML(http.StatusOK, "feed.html", gin.H{
		"User":    user,
		"Query":   query,
		"Entries": entries,
		"Flash":   popFlash(c),
	})
}

// Profile shows a user's own photos plus the photos they saved and liked,
// as three independent collections. An unknown username is a 404, distinct
// from an existing user with empty collections.
func (h HandlerSet) Profile(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	profile, err := h.users.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.renderError(c, http.StatusNotFound, "No such user")
			return
		}
		h.internalError(c, err, "profile lookup failed")
		return
	}

	ctx := c.Request.Context()
	own, err := h.photos.ListByOwner(ctx, profile.ID)
	if err != nil {
		h.internalError(c, err, "profile photos query failed")
		return
	}
	saved, err := h.photos.ListReactedBy(ctx, repository.SavesTable, profile.ID)
	if err != nil {
		h.internalError(c, err, "saved photos query failed")
		return
	}
	liked, err := h.photos.ListReactedBy(ctx, repository.LikesTable, profile.ID)
	if err != nil {
		h.internalError(c, err, "liked photos query failed")
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User":    current,
		"Profile": profile,
		"Photos":  own,
		"Saved":   saved,
		"Liked":   liked,
		"Flash":   popFlash(c),
	})
}
