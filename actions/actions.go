package actions

import (
	"errors"
	"net/http"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo/render"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/log"
)

var r = render.New(render.Options{
	DefaultContentType: "application/json",
})

// reportError logs an error with details and renders the error as JSON
func reportError(c buffalo.Context, err error) error {
	appErr := appErrorFromErr(err)
	appErr.SetHttpStatusFromCategory()

	if appErr.Extras == nil {
		appErr.Extras = map[string]any{}
	}

	appErr.Extras = api.MergeExtras([]map[string]any{getExtras(c), appErr.Extras})
	appErr.Extras["function"] = domain.GetFunctionName(2)
	appErr.Extras["key"] = appErr.Key
	appErr.Extras["status"] = appErr.HttpStatus
	appErr.Extras["method"] = c.Request().Method
	appErr.Extras["URI"] = c.Request().RequestURI
	appErr.Extras["IP"] = c.Request().RemoteAddr
	log.WithFields(appErr.Extras).Error(appErr.Error())

	appErr.LoadMessage()

	// clear out debugging info if not in development or test
	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		if appErr.Err != nil {
			appErr.DebugMsg = appErr.Err.Error()
		}
	} else {
		appErr.Extras = map[string]any{}
	}

	return c.Render(appErr.HttpStatus, r.JSON(appErr))
}

func appErrorFromErr(err error) *api.AppError {
	var appErr *api.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &api.AppError{
		Err:        err,
		HttpStatus: http.StatusInternalServerError,
		Key:        api.ErrorUnknown,
		Category:   api.CategoryInternal,
	}
}

func getExtras(c buffalo.Context) map[string]any {
	extras, _ := c.Value(domain.ContextKeyExtras).(map[string]any)
	if extras == nil {
		extras = map[string]any{}
	}
	return extras
}

func newExtra(c buffalo.Context, key string, e any) {
	extras := getExtras(c)
	extras[key] = e
	c.Set(domain.ContextKeyExtras, extras)
}

func renderOk(c buffalo.Context, v any) error {
	return c.Render(http.StatusOK, r.JSON(v))
}
