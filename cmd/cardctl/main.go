// cardctl paylaşım token'larını çözer/üretir ve paylaşım API'sini komut satırından kullanır.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"vcard.link/configs/configsenv"
	"vcard.link/configs/configslog"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile string
	server  string
	token   string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cardctl",
		Short: "Visiting-card share tooling",
		Long: `cardctl works with visiting-card shares.

Available command groups:
  token - encode and decode self-contained share tokens
  auth  - mint access tokens for the share API
  share - create, read, update and delete stored shares over HTTP`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				configslog.InitLogger("debug", configsenv.AppEnvDevelopment)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "Path to a .env file")
	cmd.PersistentFlags().StringVar(&opts.server, "server", "", "Share API base URL (defaults to VCARD_APP_BASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("VCARD_API_TOKEN"), "Bearer token for the share API")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newTokenCmd(), newAuthCmd(opts), newShareCmd(opts))
	return cmd
}

func (o *rootOptions) config() (*configsenv.Config, error) {
	return configsenv.Load(o.envFile)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
