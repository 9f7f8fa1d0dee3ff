package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"photofeed/internal/ids"
	"photofeed/internal/middleware"
	"photofeed/internal/models"
	"photofeed/internal/repository"
)

// ToggleLike flips the like relation and reports the resulting state.
func (h HandlerSet) ToggleLike(c *gin.Context) {
	h.toggle(c, h.likes, "liked")
}

// ToggleSave flips the save relation and reports the resulting state.
func (h HandlerSet) ToggleSave(c *gin.Context) {
	h.toggle(c, h.saves, "saved")
}

func (h HandlerSet) toggle(c *gin.Context, relation *repository.ReactionRepository, field string) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	active, err := relation.Toggle(c.Request.Context(), user.ID, c.Param("photoID"))
	if err != nil {
		h.log.Error().Err(err).Str("photo_id", c.Param("photoID")).Msg("toggle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "toggle failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{field: active})
}

// PostComment admits or rejects a comment. Empty text is a missing-field
// failure and never reaches the moderator; rejected text is discarded.
func (h HandlerSet) PostComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	text := c.PostForm("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "text required"})
		return
	}

	decision := h.moderator.Review(text)
	if !decision.Admitted {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": decision.Reason})
		return
	}

	comment := models.Comment{
		ID:        ids.New(),
		UserID:    user.ID,
		PhotoID:   c.Param("photoID"),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.comments.Create(c.Request.Context(), comment); err != nil {
		h.log.Error().Err(err).Str("photo_id", comment.PhotoID).Msg("comment create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not save comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
