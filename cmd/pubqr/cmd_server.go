package main

import (
	"fmt"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pubqr/app/controllers"
	"github.com/shashiranjanraj/pubqr/app/routes"
	"github.com/shashiranjanraj/pubqr/internal/server"
	"github.com/shashiranjanraj/pubqr/pkg/router"
)

// pubqr serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start(cmd.Context())
	},
}

// pubqr route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.RegisterAPI(r, routes.Deps{
			Auth:        &controllers.AuthController{},
			Orders:      &controllers.OrderController{},
			Catalog:     &controllers.CatalogController{},
			Health:      &controllers.HealthController{},
			GraphQL:     http.NotFoundHandler(),
			StorageRoot: ".",
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
