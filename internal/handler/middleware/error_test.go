//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/handler/middleware"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/shared"
	"hotel-reservation/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var errShelfFull = errs.Define(errs.KindBusinessRule, "SHELF_FULL", "the test shelf is full")

func TestErrorHandler(t *testing.T) {
	router := httptest.NewTestRouter(middleware.CustomRecovery(), middleware.ErrorHandler())
	router.GET("/recorded", func(c *gin.Context) {
		_ = c.Error(errs.WithDetail(errShelfFull, "shelf 3"))
	})
	router.GET("/unclassified", func(c *gin.Context) {
		_ = c.Error(errors.New("dial tcp 10.0.0.7:5432: connection refused"))
	})
	router.GET("/aborted", func(c *gin.Context) {
		httperr.Abort(c, shared.ErrRoomNotFound)
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	t.Run("recorded domain error becomes the envelope", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/recorded", nil, "")

		env := httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "SHELF_FULL")
		assert.Equal(t, "the test shelf is full", env.Error.Message)
	})

	t.Run("unclassified error does not leak", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/unclassified", nil, "")

		env := httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "INFRASTRUCTURE_ERROR")
		assert.NotContains(t, w.Body.String(), "10.0.0.7")
		assert.Equal(t, "Internal server error", env.Error.Message)
	})

	t.Run("already written responses are left alone", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/aborted", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "ROOM_NOT_FOUND")
	})

	t.Run("panics are recovered as 500", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/panic", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "INFRASTRUCTURE_ERROR")
	})
}

func TestAbortIncludesDetails(t *testing.T) {
	router := httptest.NewTestRouter()
	router.GET("/detail", func(c *gin.Context) {
		httperr.Abort(c, errs.WithDetail(errShelfFull, "shelf 3"))
	})
	router.GET("/infra", func(c *gin.Context) {
		httperr.Abort(c, errs.WithDetail(errs.Mark(errors.New("disk"), shared.ErrStorageFailure), "/var/lib/data"))
	})

	w := httptest.PerformRequest(t, router, http.MethodGet, "/detail", nil, "")
	env := httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "SHELF_FULL")
	assert.Equal(t, []any{"shelf 3"}, env.Detail)

	w = httptest.PerformRequest(t, router, http.MethodGet, "/infra", nil, "")
	env = httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "STORAGE_FAILURE")
	assert.Nil(t, env.Detail)
	assert.NotContains(t, w.Body.String(), "/var/lib/data")
}

func TestStatusOf(t *testing.T) {
	cases := map[errs.Kind]int{
		errs.KindValidation:     http.StatusBadRequest,
		errs.KindNotFound:       http.StatusNotFound,
		errs.KindBusinessRule:   http.StatusUnprocessableEntity,
		errs.KindConflict:       http.StatusConflict,
		errs.KindAuthentication: http.StatusUnauthorized,
		errs.KindAuthorization:  http.StatusForbidden,
		errs.KindInfrastructure: http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, httperr.StatusOf(kind), kind.String())
	}
	assert.Equal(t, http.StatusInternalServerError, httperr.StatusOf(errs.Kind("SOMETHING_ELSE")))
}
