package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope around every API reply. Extras holds the game,
// the analysis or, on failure, an ErrorBody.
type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

// ErrorBody is the extras payload of a failed call.
type ErrorBody struct {
	Message string `json:"message"`
}

// SuccessResponse writes a 200 envelope around extras.
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(http.StatusOK, Response{Success: true, Code: http.StatusOK, Extras: extras})
}

// ErrorResponse writes a failed envelope with the given status.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Success: false, Code: code, Extras: ErrorBody{Message: message}})
}

// AbortWithError writes apiErr and stops the remaining handlers.
func AbortWithError(c *gin.Context, apiErr Error) {
	c.AbortWithStatusJSON(apiErr.Code, Response{
		Success: false,
		Code:    apiErr.Code,
		Extras:  ErrorBody{Message: apiErr.Extras},
	})
}
