// Package main provides the kektorvec command.
//
// Usage:
//
//	kektorvec serve [--config path] [--port n]
//	kektorvec namespaces [--addr url] [--token t]
//
// The server is configured from built-in defaults, an optional YAML file and
// ENGINE_* environment variables, in that order.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "kektorvec",
	Short:         "In-memory multi-tenant vector search server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(namespacesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
