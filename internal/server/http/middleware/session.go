package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CartSessionContextKey is a gin context key for the cart session id.
	CartSessionContextKey = "cartSession"
	// CartSessionHeader carries the cart session of clients without cookies.
	CartSessionHeader = "X-Cart-Session"
	cartCookieName    = "storefront_cart"
	cartCookieMaxAge  = 30 * 24 * 60 * 60
)

// CartSession resolves the cart session id from header or cookie and issues
// a new one when absent or malformed.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CartSessionHeader)
		if id == "" {
			id, _ = c.Cookie(cartCookieName)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.SetCookie(cartCookieName, id, cartCookieMaxAge, "/", "", false, true)
		c.Header(CartSessionHeader, id)
		c.Set(CartSessionContextKey, id)
		c.Next()
	}
}

// CartSessionID returns the cart session id stored in context.
func CartSessionID(c *gin.Context) string {
	return c.GetString(CartSessionContextKey)
}
