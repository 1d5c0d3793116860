package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/wmgr/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the configuration file",
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	configPrintCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), res)
		},
	}

	configExplainCmd := &cobra.Command{
		Use:   "explain <path>",
		Short: "Show a config value and where it came from",
		Example: `  wmgr config explain move_step
  wmgr config explain x11.workspace_hotkeys`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return config.Paths(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := config.Load(configPath)
			if err != nil {
				return err
			}
			value, src, err := config.Explain(res, args[0])
			if err != nil {
				return fmt.Errorf("%w (known paths: %s)", err, strings.Join(config.Paths(), ", "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\nsource: %s\n", args[0], value, src)
			return nil
		},
	}

	var force bool
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	configCmd.AddCommand(configPathCmd, configPrintCmd, configExplainCmd, configInitCmd)
	return configCmd
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultConfigPath()
}

func printConfig(w io.Writer, res *config.LoadResult) error {
	data, err := res.Config.Marshal()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if res.File != "" {
		fmt.Fprintf(w, "# loaded from %s\n", res.File)
	} else {
		fmt.Fprintln(w, "# built-in defaults (no config file)")
	}
	_, err = w.Write(data)
	return err
}
