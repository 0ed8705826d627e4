package actions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
)

func registerCustomErrorHandler(app *buffalo.App) {
	app.ErrorHandlers[http.StatusInternalServerError] = customErrorHandler
}

func customErrorHandler(status int, origErr error, c buffalo.Context) error {
	c.Logger().Error(origErr)
	c.Response().Header().Set("content-type", "application/json")
	c.Response().WriteHeader(status)

	if domain.Env.GoEnv == domain.EnvDevelopment {
		debug.PrintStack()
	}

	appError := api.AppError{
		HttpStatus: status,
		Key:        api.ErrorGenericInternalServer,
		DebugMsg:   fmt.Sprintf("(%T) %s", origErr, origErr),
		Message:    api.ErrorGenericInternalServer.Message(),
	}
	return json.NewEncoder(c.Response()).Encode(&appError)
}
