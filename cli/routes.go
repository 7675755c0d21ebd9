package cli

import (
	"fmt"
	"strings"

	actx "go.hackfix.me/banyan/app/context"
	"go.hackfix.me/banyan/web/server"
)

// Routes lists the routes served by the web server.
type Routes struct{}

// Run the routes command.
func (c *Routes) Run(appCtx *actx.Context) error {
	rt := server.Routes(appCtx, server.Options{}, appCtx.Logger)

	data := [][]string{}
	for _, r := range rt.Routes() {
		methods := "*"
		if len(r.Methods) > 0 {
			methods = strings.Join(r.Methods, ",")
		}
		data = append(data, []string{r.Pattern, methods})
	}

	if err := renderTable([]string{"Pattern", "Methods"}, data, appCtx.Stdout); err != nil {
		return fmt.Errorf("failed rendering routes table: %w", err)
	}

	return nil
}
