package main

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "httpserver",
	Short: "Minimal HTTP/1.1 server built directly on TCP",
	Long: `httpserver accepts TCP connections, decodes the HTTP/1.1 request line,
and answers with files from a public directory. Headers and bodies are not
parsed; every response is a bare status line followed by the body.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("httpserver version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (toml, yaml or json)")
	rootCmd.AddCommand(serveCmd)
}
