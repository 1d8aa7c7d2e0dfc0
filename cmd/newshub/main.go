package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deusflow/newshub/internal/app"
	"github.com/deusflow/newshub/internal/config"
	"github.com/deusflow/newshub/internal/logger"
	"github.com/deusflow/newshub/internal/news"
	"github.com/deusflow/newshub/internal/translate"
)

var (
	version = "dev"
	commit  = "none"
)

var (
	flagCategory string
	flagLanguage string
	flagAddr     string
)

var rootCmd = &cobra.Command{
	Use:           "newshub",
	Short:         "AI news hub: summarized headlines in your language",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := setup(cmd.Context())
		defer a.Close()

		if flagAddr != "" {
			a.Config.HTTPAddr = flagAddr
		}
		return a.Serve(cmd.Context())
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Summarize one category and print the HTML cards",
	Long: `Fetch top headlines for a category, summarize them in the chosen language
and print the combined article cards to stdout.

Categories: ` + strings.Join(news.Categories, ", ") + `
Languages:  ` + strings.Join(news.Languages, ", "),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagCategory != "" && !news.ValidCategory(flagCategory) {
			return fmt.Errorf("unknown category %q (valid: %s)", flagCategory, strings.Join(news.Categories, ", "))
		}
		if flagLanguage != "" && !news.ValidLanguage(flagLanguage) {
			return fmt.Errorf("unknown language %q (valid: %s)", flagLanguage, strings.Join(news.Languages, ", "))
		}

		a := setup(cmd.Context())
		defer a.Close()

		fmt.Fprintln(cmd.OutOrStdout(), a.Fetch(cmd.Context(), flagCategory, flagLanguage))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newshub %s (commit: %s)\n", version, commit)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
	fetchCmd.Flags().StringVar(&flagCategory, "category", "", "news category")
	fetchCmd.Flags().StringVar(&flagLanguage, "language", translate.English, "summary language")

	rootCmd.AddCommand(serveCmd, fetchCmd, versionCmd)
}

// setup loads configuration and builds the pipeline. An invalid configuration
// is logged and startup continues.
func setup(ctx context.Context) *app.App {
	cfg, err := config.Load()
	logger.Init(cfg.Debug)
	if err != nil {
		logger.Error("Configuration incomplete", "error", err)
	}
	return app.New(ctx, cfg)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
