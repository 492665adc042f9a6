package cookie

import (
	"net/http"
	"time"

	"hotel-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName  = "access_token"
	RefreshTokenCookieName = "refresh_token"
	// refreshCookiePath keeps the refresh token off every request but the refresh call.
	refreshCookiePath = "/api/auth"
)

// SetTokenCookies writes both tokens as HttpOnly cookies that expire with the tokens.
func SetTokenCookies(c *gin.Context, cfg config.CookieConfig, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	c.SetSameSite(sameSiteOf(cfg.SameSite))
	set(c, cfg, AccessTokenCookieName, accessToken, "/", int(accessTTL.Seconds()))
	set(c, cfg, RefreshTokenCookieName, refreshToken, refreshCookiePath, int(refreshTTL.Seconds()))
}

func ClearTokenCookies(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(sameSiteOf(cfg.SameSite))
	set(c, cfg, AccessTokenCookieName, "", "/", -1)
	set(c, cfg, RefreshTokenCookieName, "", refreshCookiePath, -1)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func GetRefreshToken(c *gin.Context) string {
	token, _ := c.Cookie(RefreshTokenCookieName)
	return token
}

func set(c *gin.Context, cfg config.CookieConfig, name, value, path string, maxAge int) {
	c.SetCookie(name, value, maxAge, path, cfg.Domain, cfg.Secure, true)
}

func sameSiteOf(s string) http.SameSite {
	switch s {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
