package setup

import (
	"fmt"
	"os"

	"finch/internal/config"

	"github.com/spf13/cobra"
)

var force bool

var Cmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a default finch configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path()
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		written, err := config.Write(config.Default())
		if err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("wrote %s\n", written)
		fmt.Println("set OPENAI_API_KEY (and optionally BRAVE_API_KEY) in the environment, or edit the file to add keys")
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
}
