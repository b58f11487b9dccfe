package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/polygon-api/internal/dataset"
)

var inspectFile string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a boundary dataset without serving",
	RunE: func(cmd *cobra.Command, args []string) error {
		source := inspectFile
		if source == "" {
			source = cfg.Dataset.Path
		}

		sum, err := dataset.Inspect(cmd.Context(), source, cfg.Dataset.TempDir)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(sum)
		if err != nil {
			return eris.Wrap(err, "inspect: marshal summary")
		}
		cmd.Print(string(out))

		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "boundary dataset path or URL (default from config)")
	rootCmd.AddCommand(inspectCmd)
}
