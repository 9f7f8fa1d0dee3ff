package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "photofeed_flash"

// Flash is a one-shot notice carried across a redirect in a short-lived
// cookie.
type Flash struct {
	Message string `json:"m"`
	Level   string `json:"l"`
}

func setFlash(c *gin.Context, message, level string) {
	payload, err := json.Marshal(Flash{Message: message, Level: level})
	if err != nil {
		return
	}
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(payload), 60, "/", "", false, true)
}

func popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(decoded, &f); err != nil {
		return nil
	}
	return &f
}

func (h HandlerSet) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Status":  status,
		"Message": message,
	})
}

func (h HandlerSet) internalError(c *gin.Context, err error, what string) {
	h.log.Error().Err(err).Str("request_id", c.Writer.Header().Get("X-Request-Id")).Msg(what)
	h.renderError(c, http.StatusInternalServerError, "Something went wrong")
}
