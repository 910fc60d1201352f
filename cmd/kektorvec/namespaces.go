package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sanonone/kektorvec/pkg/client"
)

var (
	namespacesAddr  string
	namespacesToken string
)

var namespacesCmd = &cobra.Command{
	Use:   "namespaces",
	Short: "List the namespaces of a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := namespacesToken
		if token == "" {
			token = os.Getenv("ENGINE_AUTH_TOKEN")
		}
		c := client.New(namespacesAddr, client.WithToken(token))

		infos, err := c.Namespaces()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAMESPACE\tDIMENSION\tVECTORS\tM\tEF_CONSTRUCTION\tEF_SEARCH")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n",
				info.Name, info.Dimension, info.VectorCount, info.M, info.EfConstruction, info.EfSearch)
		}
		return w.Flush()
	},
}

func init() {
	namespacesCmd.Flags().StringVar(&namespacesAddr, "addr", "http://localhost:50051", "server base URL")
	namespacesCmd.Flags().StringVar(&namespacesToken, "token", "", "bearer token (default: $ENGINE_AUTH_TOKEN)")
}
