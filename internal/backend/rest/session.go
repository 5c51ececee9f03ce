package rest

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// attachSession sends the token both as the session cookie and as a bearer header.
// Expired tokens are not sent.
func (c *Client) attachSession(req *http.Request) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if !token.Valid() {
		return
	}
	token.SetAuthHeader(req)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token.AccessToken})
}

// captureSession stores a session cookie set by the server, or clears the
// session when the server expires it.
func (c *Client) captureSession(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name != SessionCookie {
			continue
		}
		if cookie.Value == "" || cookie.MaxAge < 0 {
			c.dropSession()
			return
		}
		c.storeSession(&oauth2.Token{
			AccessToken: cookie.Value,
			TokenType:   "Bearer",
			Expiry:      cookieExpiry(cookie),
		})
		return
	}
}

func (c *Client) storeSession(token *oauth2.Token) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if err := c.tokens.Save(token); err != nil {
		c.logger.Warningf("could not persist session: %v", err)
	}
}

func (c *Client) dropSession() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()

	if err := c.tokens.Clear(); err != nil {
		c.logger.Warningf("could not clear stored session: %v", err)
	}
}

// cookieExpiry prefers the JWT exp claim, then the cookie attributes.
func cookieExpiry(cookie *http.Cookie) time.Time {
	if exp, ok := tokenExpiry(cookie.Value); ok {
		return exp
	}
	if cookie.MaxAge > 0 {
		return time.Now().Add(time.Duration(cookie.MaxAge) * time.Second)
	}
	return cookie.Expires
}

// tokenExpiry reads the exp claim. The signature is the server's business.
func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
