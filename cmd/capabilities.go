package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"rzdio/internal/bridge"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newCapabilitiesCmd() *cobra.Command {
	var jsonOutput bool

	capabilitiesCmd := &cobra.Command{
		Use:     "capabilities",
		Aliases: []string{"caps"},
		Short:   "List the capabilities registered on the channel",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			infos := application.Registration().Dispatcher().Capabilities()
			if jsonOutput {
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Channel %s\n", application.Registration().Name())
			fmt.Fprintln(cmd.OutOrStdout(), renderCapabilityTable(infos))
			return nil
		},
	}

	capabilitiesCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print capabilities as JSON")
	return capabilitiesCmd
}

func renderCapabilityTable(infos []bridge.CapabilityInfo) string {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, formatParameters(info.Parameters), info.Description})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("METHOD", "PARAMETERS", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})

	return t.String()
}

func formatParameters(params []bridge.Parameter) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name + ":" + p.Type
		if p.Required {
			s += "*"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
