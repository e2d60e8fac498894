package web

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

type flashKind string

const (
	flashNotice flashKind = "notice"
	flashAlert  flashKind = "alert"
)

// flash is a one-shot message carried across a redirect.
type flash struct {
	Kind    flashKind `json:"kind"`
	Message string    `json:"message"`
}

func (s *Server) setFlash(c *gin.Context, kind flashKind, message string) {
	raw, _ := json.Marshal(flash{Kind: kind, Message: message})
	s.setCookie(c, flashCookie, base64.RawURLEncoding.EncodeToString(raw), 60)
}

func (s *Server) setFlashKey(c *gin.Context, kind flashKind, key string, data map[string]any) {
	s.setFlash(c, kind, s.translator.T(locale(c), key, data))
}

// takeFlash reads and clears the pending flash.
func (s *Server) takeFlash(c *gin.Context) *flash {
	v, err := c.Cookie(flashCookie)
	if err != nil || v == "" {
		return nil
	}
	s.setCookie(c, flashCookie, "", -1)
	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil
	}
	var f flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}
