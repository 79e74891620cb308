package cmd

import (
	"fmt"

	"github.com/noire-dev/aas/aaslib"
	"github.com/spf13/cobra"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a library settings file",
	Long: `Create a Library settings file in YAML format, prefilled with
DefaultSettings.

If FILE is not provided, 'aaslib.yml' is used`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "aaslib.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		if ok, err := confirmIfExists(path,
			fmt.Sprintf("file name %s already exists, overwrite? [y/N]", path)); !ok {
			if err == nil {
				fmt.Println("aborted by user...")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}
		check(aaslib.DefaultSettings().Save(path))
		fmt.Printf("library settings written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
