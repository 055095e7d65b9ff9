package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/photostamp/internal/config"
	"github.com/Nomadcxx/photostamp/internal/paths"
	"github.com/Nomadcxx/photostamp/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage photostamp configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ConfigExists() && !force {
				path, _ := paths.ConfigPath()
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if birthDate != "" {
				cfg.Reference.BirthDate = birthDate
				if _, err := cfg.ParseBirthDate(); err != nil {
					return err
				}
			}

			if err := cfg.Save(); err != nil {
				return err
			}

			path, _ := paths.ConfigPath()
			ui.SuccessMsg("wrote %s", ui.Path(path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config")
	cmd.Flags().StringVarP(&birthDate, "birth-date", "b", "", "birth date YYYY-MM-DD")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Print(cfg.ToTOML())
			return nil
		},
	}
}
