package commands

import (
	"github.com/spf13/cobra"

	"github.com/willibrandon/slingshot/cmd/slingshot/output"
	"github.com/willibrandon/slingshot/generate"
)

// NewFormatsCommand creates the formats command
func NewFormatsCommand(console *output.Console) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the available output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormats(console, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the list as JSON")

	return cmd
}

func runFormats(console *output.Console, asJSON bool) error {
	result := output.FormatsOutput{
		SchemaVersion: output.CurrentSchemaVersion,
		Formats:       []output.FormatInfo{},
	}
	width := 0
	for _, name := range generate.Formats() {
		desc, _ := generate.Describe(name)
		result.Formats = append(result.Formats, output.FormatInfo{Name: name, Description: desc})
		width = max(width, len(name))
	}

	if asJSON {
		return output.WriteJSON(console.Out(), result)
	}

	for _, f := range result.Formats {
		console.Printf("%-*s  %s\n", width, f.Name, f.Description)
	}
	return nil
}
