package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pizza-delivery-api/internal/kernel"
	"github.com/shashiranjanraj/pizza-delivery-api/internal/server"
)

// pizza serve: start the HTTP server (and gRPC health when GRPC_PORT is set).
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, flush, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer flush()

		k, err := kernel.Boot(ctx, cfg)
		if err != nil {
			return err
		}
		defer k.Close()

		return server.New(k).Run(ctx)
	},
}

// pizza route:list: print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, flush, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer flush()

		k, err := kernel.Boot(ctx, cfg)
		if err != nil {
			return err
		}
		defer k.Close()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
