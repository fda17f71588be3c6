package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles chặn route theo vai trò, dùng cho khu vực quản trị
// (kiểm duyệt video, quản lý phim/danh mục/thể loại).
// Tự gọi AuthMiddleware nên không cần gắn riêng khi đăng ký route.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		AuthMiddleware()(c)
		if c.IsAborted() {
			return
		}

		roleValue, _ := c.Get("role")
		role, ok := roleValue.(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được vai trò của tài khoản"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Tài khoản của bạn không có quyền thực hiện thao tác này"})
		c.Abort()
	}
}
