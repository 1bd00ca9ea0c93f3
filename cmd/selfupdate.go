package cmd

import (
	"errors"
	"fmt"

	"rzdio/internal/config"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// repoSlug is the GitHub repository releases are fetched from, owner/name
var repoSlug string

func newSelfUpdateCmd() *cobra.Command {
	selfUpdateCmd := &cobra.Command{
		Use:   "self-update",
		Short: "Update rzdio to the latest version",
		Long: `Checks for the latest release of rzdio on GitHub and
updates the current binary if a newer version is found.

The repository is taken from --repo or from updates.repository in the
configuration.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}

	selfUpdateCmd.Flags().StringVar(&repoSlug, "repo", "", "GitHub repository to update from (owner/name)")
	return selfUpdateCmd
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	currentVersion := rootCmd.Version
	if currentVersion == "" || currentVersion == "dev" {
		return errors.New("cannot self-update a development version")
	}

	slug, err := updateRepository()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	out := rootCmd.OutOrStdout()
	if cmd != nil {
		out = cmd.OutOrStdout()
	}

	fmt.Fprintf(out, "Current version: %s\n", currentVersion)
	fmt.Fprintf(out, "Checking for updates in %s...\n", slug)

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(slug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s could not be found in %s", currentVersion, slug)
	}

	if latest.LessOrEqual(currentVersion) {
		fmt.Fprintf(out, "Current version (%s) is the latest\n", currentVersion)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	fmt.Fprintf(out, "Updating to %s...\n", latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version())
	return nil
}

// updateRepository resolves the release repository from the flag or the configuration
func updateRepository() (string, error) {
	if repoSlug != "" {
		return repoSlug, nil
	}

	var (
		settings config.RzdioConfig
		err      error
	)
	if configPath != "" {
		settings, err = config.LoadConfigFromPath(configPath)
	} else {
		settings, err = config.LoadConfig()
	}
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}

	if settings.Updates.Repository == "" {
		return "", errors.New("no update repository configured; pass --repo or set updates.repository")
	}
	return settings.Updates.Repository, nil
}
