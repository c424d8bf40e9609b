package jwt

import (
	"OrgLink/pkg/back"
	"OrgLink/pkg/util/myjwt"
	"OrgLink/pkg/xerr"
	"strings"

	"github.com/gin-gonic/gin"
)

func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			back.Error(c, xerr.Unauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := myjwt.ParseToken(tokenString)
		if err != nil {
			back.Error(c, xerr.Unauthorized, "invalid token")
			c.Abort()
			return
		}

		// 下游直接信任这里写入的调用者身份
		c.Set("uuid", claims.Uuid)
		c.Set("username", claims.Username)
		c.Set("org_uuid", claims.OrgUuid)
		c.Next()
	}
}
