package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// parseIntQuery đọc số nguyên dương từ query, sai thì trả về mặc định
func parseIntQuery(c *gin.Context, key string, def int) int {
	v := def
	if s := c.Query(key); s != "" {
		fmt.Sscanf(s, "%d", &v)
		if v < 1 {
			v = def
		}
	}
	return v
}
