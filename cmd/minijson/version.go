package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"minijson/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show minijson build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return fmt.Errorf("failed to get verbose flag: %w", err)
			}

			info := version.Collect()
			switch strings.ToLower(format) {
			case "pretty":
				return version.WritePretty(cmd.OutOrStdout(), info, verbose, a.useColor(os.Stdout))
			case "json":
				return version.WriteJSON(cmd.OutOrStdout(), info)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().BoolP("verbose", "v", false, "include commit, build date and Go version")
	return cmd
}
