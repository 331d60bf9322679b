package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/radar/pkg/io"
)

const defaultChartFile = "chart.toml"

// initCommand creates the init command, which writes an example chart file.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example chart file",
		Long: `Write an example chart file in TOML format.

The file lists the labels, values and colors of a small dataset along with
the chart options and a tooltip template, ready to edit and render.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultChartFile
			if len(args) == 1 {
				path = args[0]
			}
			return runInit(path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func runInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		printWarning("Overwriting %s", path)
	}

	var buf bytes.Buffer
	if err := pkgio.WriteTOML(pkgio.Example(), &buf); err != nil {
		return err
	}
	if err := writeArtifact(path, buf.Bytes()); err != nil {
		return err
	}

	printSuccess("Created %s", path)
	printNextStep("Render it", "radar render "+path)
	printNextStep("Explore it", "radar view "+path)
	return nil
}
