package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Notification kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

const flashCookie = "jobboard_flash"

// Notification is a transient message shown once on the next view.
type Notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every failed page request.
type ErrorResponse struct {
	Error         string         `json:"error"`
	Notifications []Notification `json:"notifications,omitempty"`
}

// Page is the view model every page route renders.
type Page struct {
	View          string         `json:"view"`
	Data          any            `json:"data,omitempty"`
	Empty         string         `json:"empty,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}

func success(msg string) Notification { return Notification{Kind: NoticeSuccess, Message: msg} }
func info(msg string) Notification    { return Notification{Kind: NoticeInfo, Message: msg} }

// render writes a page, prepending any flash left by the previous redirect.
func render(c echo.Context, view string, data any, notes ...Notification) error {
	return c.JSON(http.StatusOK, Page{
		View:          view,
		Data:          data,
		Notifications: append(takeFlash(c), notes...),
	})
}

// renderEmpty writes a page whose content is an empty-state message.
func renderEmpty(c echo.Context, view string, data any, empty string) error {
	return c.JSON(http.StatusOK, Page{
		View:          view,
		Data:          data,
		Empty:         empty,
		Notifications: takeFlash(c),
	})
}

// seeOther ends a form post: the notification survives the redirect in a
// short-lived cookie.
func seeOther(c echo.Context, to string, note *Notification) error {
	if note != nil {
		c.SetCookie(&http.Cookie{
			Name:     flashCookie,
			Value:    url.QueryEscape(note.Kind + ":" + note.Message),
			Path:     "/",
			MaxAge:   60,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return c.Redirect(http.StatusSeeOther, to)
}

func takeFlash(c echo.Context) []Notification {
	ck, err := c.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, HttpOnly: true})
	raw, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return nil
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] == ':' {
			return []Notification{{Kind: raw[:i], Message: raw[i+1:]}}
		}
	}
	return nil
}
