package httperr

import (
	"net/http"
	"time"

	"hotel-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Body struct {
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

var kindStatus = map[errs.Kind]int{
	errs.KindValidation:     http.StatusBadRequest,
	errs.KindNotFound:       http.StatusNotFound,
	errs.KindBusinessRule:   http.StatusUnprocessableEntity,
	errs.KindConflict:       http.StatusConflict,
	errs.KindAuthentication: http.StatusUnauthorized,
	errs.KindAuthorization:  http.StatusForbidden,
	errs.KindInfrastructure: http.StatusInternalServerError,
}

func StatusOf(kind errs.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func NewResponse(status int, code, msg string, detail any) Response {
	return Response{
		Status: status,
		Error: Body{
			Message:   msg,
			Code:      code,
			Timestamp: time.Now().UTC(),
		},
		Detail: detail,
	}
}

// AbortWithError keeps err on the gin context so logging middleware can report the cause.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}
	abort(c, NewResponse(status, errs.CodeOf(err), msg, detail), err)
}

// Abort answers with the status, code and public message derived from err's classification.
func Abort(c *gin.Context, err error) {
	if err == nil {
		panic("Abort: err cannot be nil")
	}
	var detail any
	if details := errs.Details(err); len(details) > 0 && errs.KindOf(err) != errs.KindInfrastructure {
		detail = details
	}
	resp := NewResponse(StatusOf(errs.KindOf(err)), errs.CodeOf(err), errs.PublicMessage(err), detail)
	abort(c, resp, err)
}

func abort(c *gin.Context, resp Response, err error) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
