package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "elaulik",
		Short:         "Estonian culture news, events and gallery in one place",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(serveCmd())
	root.AddCommand(fetchCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(sourcesCmd())

	return root
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web site",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config or PORT)")
	return cmd
}

func fetchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:       "fetch <uudised|syndmused|kultuur|galerii>",
		Short:     "Fetch one category and print its items",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"uudised", "syndmused", "kultuur", "galerii"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func searchCmd() *cobra.Command {
	var (
		category   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search news, events and culture articles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			return runSearch(query, category, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&category, "category", "all", "all, uudised, syndmused or kultuur")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSources()
		},
	}
}
