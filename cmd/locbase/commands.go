package main

import (
	"errors"
	"fmt"

	"github.com/benmeehan/location-base/internal/services"
	"github.com/spf13/cobra"
)

// rootCommand creates and returns the root command
func rootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "locbase",
		Short:         "Capture the current position and keep a local history",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to the configuration file")

	rootCmd.AddCommand(
		captureCommand(&configPath),
		historyCommand(&configPath),
		darkModeCommand(&configPath),
	)
	return rootCmd
}

func captureCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Capture the current location and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			record, err := a.service.CaptureAndStore(cmd.Context())
			if err != nil {
				if errors.Is(err, services.ErrPermissionDenied) {
					return fmt.Errorf("location not captured: %w", err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Captured location %d\n", record.ID)
			printHistory(out, a.service.Session().History)
			return nil
		},
	}
}

func historyCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List captured locations, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			printHistory(cmd.OutOrStdout(), a.service.Session().History)
			return nil
		},
	}
}

func darkModeCommand(configPath *string) *cobra.Command {
	darkModeCmd := &cobra.Command{
		Use:   "dark-mode",
		Short: "Show the display mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Display mode: %s\n", displayModeName(a.service.Session().DarkMode))
			return nil
		},
	}

	darkModeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark display mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			a.service.ToggleDisplayMode()
			// Close waits for the write, so the reported mode is the one that was kept
			closeErr := a.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Display mode: %s\n", displayModeName(a.service.Session().DarkMode))
			return closeErr
		},
	})
	return darkModeCmd
}
