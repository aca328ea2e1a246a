package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inayatwani8899/mindgauge/internal/api"
	"github.com/inayatwani8899/mindgauge/internal/app"
	"github.com/inayatwani8899/mindgauge/internal/config"
	"github.com/inayatwani8899/mindgauge/internal/logger"
)

// runApp loads configuration, builds the API client, and launches the TUI
// at the lobby.
func runApp(cmd *cobra.Command) error {
	return runAppWithTest(cmd, "")
}

// runAppWithTest optionally skips the lobby and opens the given test.
func runAppWithTest(cmd *cobra.Command, testID string) error {
	cfg := config.Load()
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.UserID = u
	}

	log, closeLog, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closeLog()

	var client api.Client
	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		client = api.NewDemoClient()
		if cfg.UserID == "" {
			cfg.UserID = "demo-student"
		}
	} else {
		if cfg.UserID == "" {
			return fmt.Errorf("no student ID configured: set MINDGAUGE_USER_ID or pass --user")
		}
		httpClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.APIToken, cfg.RequestTimeout, log)
		client = api.WithRetry(httpClient, api.DefaultRetryConfig())
	}

	log.Info().Str("user_id", cfg.UserID).Msg("starting")

	return app.Run(app.Options{
		API:    client,
		Cfg:    cfg,
		Log:    log,
		TestID: testID,
	})
}
