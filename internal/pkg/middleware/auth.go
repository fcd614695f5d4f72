package middleware

import (
	"net/http"
	"strings"

	"yumzy/pkg/response"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
)

// 登录态 Cookie 名称
const (
	UserTokenCookie    = "userToken"
	PartnerTokenCookie = "partnerToken"
)

// 上下文键
const (
	ctxUserID    = "userID"
	ctxPartnerID = "partnerID"
)

var roleCookies = map[string]string{
	utils.RoleUser:    UserTokenCookie,
	utils.RolePartner: PartnerTokenCookie,
}

var roleCtxKeys = map[string]string{
	utils.RoleUser:    ctxUserID,
	utils.RolePartner: ctxPartnerID,
}

// extractToken 先读 Cookie，再读 "Authorization: Bearer <token>"
func extractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// authenticate 校验指定角色的令牌，成功时写入上下文
func authenticate(c *gin.Context, tokens *utils.TokenManager, role string) (ok bool, missing bool) {
	token := extractToken(c, roleCookies[role])
	if token == "" {
		return false, true
	}

	claims, err := tokens.ParseTokenForRole(token, role)
	if err != nil {
		return false, false
	}

	c.Set(roleCtxKeys[role], claims.SubjectID)
	return true, false
}

func requireRole(tokens *utils.TokenManager, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, missing := authenticate(c, tokens, role)
		if missing {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenMissing, "Unauthorized access")
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserAuthMiddleware 用户认证中间件
func UserAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return requireRole(tokens, utils.RoleUser)
}

// PartnerAuthMiddleware 商家认证中间件
func PartnerAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return requireRole(tokens, utils.RolePartner)
}

// OptionalUserAuth 可选用户认证，失败时以匿名身份继续
func OptionalUserAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, tokens, utils.RoleUser)
		c.Next()
	}
}

// AnyAuthMiddleware 用户或商家任一身份通过即可
func AnyAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := authenticate(c, tokens, utils.RoleUser); ok {
			c.Next()
			return
		}
		if ok, _ := authenticate(c, tokens, utils.RolePartner); ok {
			c.Next()
			return
		}
		response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Unauthorized access")
		c.Abort()
	}
}

// CurrentUserID 当前登录用户 ID，未登录返回空字符串
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// CurrentPartnerID 当前登录商家 ID，未登录返回空字符串
func CurrentPartnerID(c *gin.Context) string {
	return c.GetString(ctxPartnerID)
}

// SetAuthCookie 写入 httpOnly 登录 Cookie
func SetAuthCookie(c *gin.Context, name, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, maxAge, "/", "", secure, true)
}

// ClearAuthCookie 清除登录 Cookie
func ClearAuthCookie(c *gin.Context, name string, secure bool) {
	c.SetCookie(name, "", -1, "/", "", secure, true)
}
