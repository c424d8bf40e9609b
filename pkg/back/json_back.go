package back

import (
	"OrgLink/pkg/xerr"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	ErrMsg  *string     `json:"errMsg"`
}

// Result 统一返回入口
func Result(c *gin.Context, data interface{}, err error) {
	if err == nil {
		Success(c, data)
		return
	}

	// 判断是否为自定义错误
	if e, ok := err.(*xerr.CodeError); ok {
		Error(c, e.Code, e.Message)
		return
	}

	// 默认为系统错误
	Error(c, xerr.ErrServerError.Code, xerr.ErrServerError.Message)
}

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Error 错误返回，message 为面向用户的短文案，不携带内部细节
func Error(c *gin.Context, code int, message string) {
	c.JSON(httpStatus(code), Response{
		Success: false,
		ErrMsg:  &message,
	})
}

// httpStatus 业务错误码映射为 HTTP 状态码
func httpStatus(code int) int {
	switch code {
	case xerr.BadRequest, xerr.Unauthorized, xerr.Forbidden, xerr.NotFound:
		return code
	default:
		return http.StatusInternalServerError
	}
}
