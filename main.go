package main

import (
	"os"

	"github.com/gobuffalo/buffalo/servers"

	"github.com/silinternational/intake-api/actions"
	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/listeners"
	"github.com/silinternational/intake-api/log"
)

// GitCommitHash is set at build time and tagged onto Sentry events
var GitCommitHash string

// main wires error reporting and event listeners, then serves the photo API
func main() {
	if hook := log.NewSentryHook(domain.Env.GoEnv, GitCommitHash); hook != nil {
		log.SetHook(hook)
	}

	listeners.RegisterListeners()

	app := actions.App()
	if err := app.Serve(servers.New()); err != nil {
		if err.Error() != "context canceled" {
			log.Errorf("server stopped: %s", err)
			os.Exit(1)
		}
		os.Exit(0)
	}
}
