package api

import (
	"fmt"
	"strings"

	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/handler/middleware"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidRequest = errs.Define(errs.KindValidation, "INVALID_REQUEST", "invalid request")
	ErrInvalidID      = errs.Define(errs.KindValidation, "INVALID_ID", "invalid id format")
	ErrUnauthorized   = errs.Define(errs.KindAuthentication, "UNAUTHORIZED", "unauthorized")

	ErrInvalidIdempotencyKey = errs.Define(errs.KindValidation, "INVALID_IDEMPOTENCY_KEY", "Idempotency-Key must be a UUID")
)

const HeaderIdempotencyKey = "Idempotency-Key"

// bindError keeps already classified errors (such as a malformed date) and turns binding
// failures into ErrInvalidRequest with one detail per offending field.
func bindError(err error) error {
	if errs.KindOf(err) != errs.KindInfrastructure {
		return err
	}
	var verrs validator.ValidationErrors
	if errs.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
		return errs.WithDetail(errs.Mark(err, ErrInvalidRequest), strings.Join(fields, ", "))
	}
	return errs.Mark(err, ErrInvalidRequest)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.Abort(c, bindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		httperr.Abort(c, bindError(err))
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.Abort(c, errs.Mark(err, ErrInvalidID))
		return uuid.Nil, false
	}
	return id, true
}

// idempotencyKey returns uuid.Nil when the client sent no key.
func idempotencyKey(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	if raw == "" {
		return uuid.Nil, true
	}
	key, err := uuid.Parse(raw)
	if err != nil || key == uuid.Nil {
		httperr.Abort(c, ErrInvalidIdempotencyKey)
		return uuid.Nil, false
	}
	return key, true
}

// actorOf is only reached behind RequireAuth; a missing actor means the route is misconfigured.
func actorOf(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Abort(c, ErrUnauthorized)
		return shared.Actor{}, false
	}
	return actor, true
}
