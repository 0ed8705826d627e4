package actions

import (
	"fmt"
	"net/http"

	"github.com/silinternational/intake-api/domain"
)

func (as *ActionSuite) Test_HomeHandler() {
	res := as.JSON("/").Get()

	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), fmt.Sprintf("Welcome to %s API", domain.Env.AppName))
}

func (as *ActionSuite) Test_StatusHandler() {
	res := as.JSON("/status").Get()
	as.Equal(http.StatusNoContent, res.Code)
}

func (as *ActionSuite) Test_Assets() {
	res := as.HTML("/assets/silhouettes/pickup/front.svg").Get()
	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), "<svg")

	res = as.HTML("/assets/silhouettes/sedan/top.svg").Get()
	as.Equal(http.StatusOK, res.Code)
}
