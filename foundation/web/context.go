package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the gin request context together with a plain
// context.Context that middleware may enrich (claims, request id).
type Context struct {
	*gin.Context
	Ctx context.Context

	app         *App
	queryErrors []string
	paramErrors []string
}

// Respond writes data as JSON with the given status.
func (c *Context) Respond(data interface{}, status int) error {
	if status == http.StatusNoContent {
		c.Status(status)
		return nil
	}
	c.JSON(status, data)
	return nil
}

// RespondError writes err to the client and hands it back so the App can log
// it. Errors that are not *Error are reported as 500 without detail.
func (c *Context) RespondError(err error) error {
	var webErr *Error
	if errors.As(err, &webErr) {
		c.JSON(webErr.Status, map[string]interface{}{
			"error":  webErr.Error(),
			"status": false,
		})
		return err
	}

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":  http.StatusText(http.StatusInternalServerError),
		"status": false,
	})
	return err
}

// RespondFile writes a download with the given content type and file name.
func (c *Context) RespondFile(data []byte, contentType, fileName string) error {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, data)
	return nil
}

// BindFunc binds the request body (JSON or form) into obj and validates it.
// When fields are given only those fields are validated.
func (c *Context) BindFunc(obj interface{}, fields ...string) error {
	if err := c.ShouldBind(obj); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	var err error
	if len(fields) > 0 {
		err = c.app.validate.StructPartial(obj, fields...)
	} else {
		err = c.app.validate.Struct(obj)
	}
	if err != nil {
		return NewRequestError(errors.Wrap(err, "validating request"), http.StatusBadRequest)
	}

	return nil
}

// GetQueryFunc returns a pointer of the requested kind for the query key, or
// nil when the key is absent. Parse failures are collected for ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, key string) interface{} {
	value, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s: must be an integer", key))
			return nil
		}
		return &v
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s: must be a boolean", key))
			return nil
		}
		return &v
	case reflect.String:
		return &value
	default:
		c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s: unsupported kind %s", key, kind))
		return nil
	}
}

// ValidQuery reports the query errors collected by GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrors) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.queryErrors, "; ")), http.StatusBadRequest)
}

// GetParam returns the path parameter converted to kind. The zero value is
// returned on failure and the failure is collected for ValidParam.
func (c *Context) GetParam(kind reflect.Kind, key string) interface{} {
	value := c.Param(key)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrors = append(c.paramErrors, fmt.Sprintf("%s: must be an integer", key))
			return 0
		}
		return v
	default:
		return value
	}
}

// ValidParam reports the path parameter errors collected by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrors) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.paramErrors, "; ")), http.StatusBadRequest)
}
