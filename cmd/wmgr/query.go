package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/engine"
	"github.com/1broseidon/wmgr/internal/workspace"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "actions"},
		Short:   "List every action name",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printActions(cmd.OutOrStdout())
			return nil
		},
	}
}

func newDisplaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "displays",
		Short: "List displays and their usable areas",
		Long: `List the attached displays in platform order.

Frames and usable areas are in top-left-origin coordinates. The display
holding the focused window is marked with '*'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			list, err := app.engine.Displays()
			if err != nil {
				app.logger.Error().Err(err).Msg("failed to list displays")
				return err
			}
			return printDisplays(cmd.OutOrStdout(), list)
		},
	}
}

func newWorkspacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"desktops"},
		Short:   "List virtual desktops with their logical ids",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			entries, err := app.engine.Workspaces()
			if err != nil {
				app.logger.Error().Err(err).Msg("failed to list workspaces")
				return err
			}
			return printWorkspaces(cmd.OutOrStdout(), entries)
		},
	}
}

func printActions(w io.Writer) {
	for i, family := range action.Families {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, headerStyle.Render(string(family)))
		for _, a := range action.All() {
			if a.Family() == family {
				fmt.Fprintf(w, "  %s\n", a)
			}
		}
	}
}

func marker(active bool) string {
	if active {
		return "*"
	}
	return " "
}

func printDisplays(w io.Writer, list []engine.Display) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tINDEX\tNAME\tFRAME\tUSABLE")
	for _, d := range list {
		name := d.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", marker(d.Active), d.Index, name, d.Frame, d.Usable)
	}
	return tw.Flush()
}

func printWorkspaces(w io.Writer, entries []workspace.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tID\tDISPLAY\tPLATFORM ID")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", marker(e.Active), e.Logical, e.Display, e.ID)
	}
	return tw.Flush()
}
