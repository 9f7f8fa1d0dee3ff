package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photofeed/internal/middleware"
	"photofeed/internal/models"
	"photofeed/internal/service"
)

// requireCreator enforces the creator-only rule before any processing;
// everyone else is bounced back to the feed with a notice.
func (h HandlerSet) requireCreator(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.Role != models.UserRoleCreator {
		setFlash(c, "Only creators allowed", "danger")
		c.Redirect(http.StatusFound, "/feed")
		return models.User{}, false
	}
	return user, true
}

func (h HandlerSet) UploadForm(c *gin.Context) {
	user, ok := h.requireCreator(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":  user,
		"Flash": popFlash(c),
	})
}

func (h HandlerSet) UploadSubmit(c *gin.Context) {
	user, ok := h.requireCreator(c)
	if !ok {
		return
	}

	input := service.UploadInput{
		Owner:         user,
		Title:         c.PostForm("title"),
		Caption:       c.PostForm("caption"),
		Location:      c.PostForm("location"),
		PeoplePresent: c.PostForm("people"),
	}

	file, header, err := c.Request.FormFile("photo")
	if err == nil {
		defer file.Close()
		input.File = file
		input.Filename = header.Filename
	}

	if _, err := h.upload.Upload(c.Request.Context(), input); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			setFlash(c, "Missing fields", "danger")
			c.Redirect(http.StatusFound, "/upload")
		case errors.Is(err, service.ErrNotAnImage):
			setFlash(c, "File could not be read as an image", "danger")
			c.Redirect(http.StatusFound, "/upload")
		default:
			h.internalError(c, err, "upload failed")
		}
		return
	}

	setFlash(c, "Uploaded successfully", "success")
	c.Redirect(http.StatusFound, "/u/"+user.Username)
}
