package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

// redirect answers a form post with 303 so a reload does not repeat it.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// productID parses the :id route parameter; it answers 400 itself when it is invalid.
func productID(c *gin.Context, log logrus.FieldLogger) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		log.Warnf("Invalid product ID parameter: %s", idStr)
		c.String(http.StatusBadRequest, "ID de produto inválido")
		return 0, false
	}
	return id, true
}
