package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/logger"
)

func abort(c *gin.Context, err error) {
	code, msg := apperrors.PublicMessage(err)
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": msg, "code": code})
}

// fail logs err with the request logger and writes the error body.
func (h *handler) fail(c *gin.Context, err error) {
	ctx := c.Request.Context()
	apperrors.NewHandler(logger.WithContext(ctx)).Handle(ctx, err)
	abort(c, err)
}

func currentUser(c *gin.Context) uuid.UUID {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(uuid.UUID)
	return userID
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("id must be a uuid")
	}
	return id, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return bindJSON(c, dst)
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(key + " must be an integer")
	}
	return v, nil
}

func queryBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(c.Query(key))
	return v
}

func ok(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

func created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
