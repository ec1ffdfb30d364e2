package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/3-lines-studio/jamb/internal/core"
)

const DraftCookie = "__jamb_draft"

const draftTokenLabel = "jamb draft mode"

// DraftMode switches a browser into the drafts perspective with a cookie.
// The cookie carries a token derived from the secret, never the secret.
// With no secret configured, draft mode cannot be enabled.
type DraftMode struct {
	secret string
	token  string
	secure bool
}

func NewDraftMode(secret string, secure bool) *DraftMode {
	d := &DraftMode{secret: secret, secure: secure}
	if secret != "" {
		d.token = draftToken(secret)
	}
	return d
}

func draftToken(secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(draftTokenLabel))
	return hex.EncodeToString(mac.Sum(nil))
}

func (d *DraftMode) Perspective(req *http.Request) core.Perspective {
	if d != nil && d.Enabled(req) {
		return core.PerspectiveDrafts
	}
	return core.PerspectivePublished
}

func (d *DraftMode) Enabled(req *http.Request) bool {
	if d == nil || d.secret == "" {
		return false
	}
	c, err := req.Cookie(DraftCookie)
	return err == nil && hmac.Equal([]byte(c.Value), []byte(d.token))
}

func (d *DraftMode) valid(secret string) bool {
	return d.secret != "" && subtle.ConstantTimeCompare([]byte(secret), []byte(d.secret)) == 1
}

func (d *DraftMode) Enable(w http.ResponseWriter, req *http.Request) {
	secret := req.URL.Query().Get("secret")
	if !d.valid(secret) {
		http.Error(w, "Invalid secret", http.StatusUnauthorized)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     DraftCookie,
		Value:    d.token,
		Path:     "/",
		HttpOnly: true,
		Secure:   d.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, req, safeRedirect(req.URL.Query().Get("redirect")), http.StatusTemporaryRedirect)
}

func (d *DraftMode) Disable(w http.ResponseWriter, req *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     DraftCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   d.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, req, safeRedirect(req.URL.Query().Get("redirect")), http.StatusTemporaryRedirect)
}

// safeRedirect only allows same-site absolute paths.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
