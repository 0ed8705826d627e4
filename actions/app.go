// Vehicle Intake API
//
// Photo storage for vehicle intake inspections, plus the silhouette drawings used by the damage diagram.
//
//     Schemes: https
//     Host: localhost
//     BasePath: /
//     Version: 0.0.1
//
//     Consumes:
//     - application/json
//     - multipart/form-data
//
//     Produces:
//     - application/json
//
// swagger:meta
package actions

import (
	"fmt"
	"net/http"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/logger"
	contenttype "github.com/gobuffalo/mw-contenttype"
	paramlogger "github.com/gobuffalo/mw-paramlogger"
	"github.com/rs/cors"

	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/imagery"
	"github.com/silinternational/intake-api/log"
	"github.com/silinternational/intake-api/photos"
	"github.com/silinternational/intake-api/public"
	"github.com/silinternational/intake-api/storage"
)

var (
	app *buffalo.App

	// photoStore and photoCompressor are the photo collaborators used by the handlers. They are created from
	// the environment on first use of App unless already set.
	photoStore      photos.Store
	photoCompressor photos.Compressor
)

// App is where all routes and middleware for buffalo
// should be defined. This is the nerve center of your
// application.
//
// Routing, middleware, groups, etc... are declared TOP -> DOWN.
// This means if you add a middleware to `app` *after* declaring a
// group, that group will NOT have that new middleware. The same
// is true of resource declarations as well.
//
// It also means that routes are checked in the order they are declared.
// `ServeFiles` is a CATCH-ALL route, so it should always be
// placed last in the route declarations, as it will prevent routes
// declared after it to never be called.
func App() *buffalo.App {
	if app != nil {
		return app
	}

	app = buffalo.New(buffalo.Options{
		Env:    domain.Env.GoEnv,
		Addr:   fmt.Sprintf("0.0.0.0:%d", domain.Env.ServerPort),
		Logger: logger.Logrus{FieldLogger: log.Logger()},
		PreWares: []buffalo.PreWare{
			cors.New(cors.Options{
				AllowedOrigins: []string{domain.Env.UIURL},
				AllowedMethods: []string{"HEAD", "GET", "POST", "DELETE"},
				AllowedHeaders: []string{"*"},
			}).Handler,
		},
		SessionName: "_intake_api_session",
	})

	initPhotoCollaborators()
	registerCustomErrorHandler(app)

	app.Use(log.SentryMiddleware)

	// Log request parameters (filters apply).
	app.Use(paramlogger.ParameterLogger)

	// Requests without a content type are treated as JSON; multipart uploads keep theirs
	app.Use(contenttype.Add("application/json"))

	app.GET("/", HomeHandler)
	app.GET("/status", statusHandler)

	app.POST("/photos", photosUpload)
	app.DELETE("/photos", photosDelete)

	app.ServeFiles("/assets", http.FS(public.FS()))

	return app
}

func initPhotoCollaborators() {
	if photoCompressor == nil {
		photoCompressor = imagery.New()
	}
	if photoStore != nil {
		return
	}
	store, err := storage.NewPhotoStore()
	if err != nil {
		log.Errorf("unable to create photo store: %s", err)
		return
	}
	photoStore = store
}
