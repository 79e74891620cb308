package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "aasinfo",
	Short: "inspect and query Area Awareness System files",
	Long: `This is the command-line application accompanying the aas module:
	- decode and validate .aas navigation files,
	- show area/reachability/cluster counts,
	- run a single route query between two areas,
	- tick a fake bot through MoveToGoal for a handful of frames,
	- create a library Settings file (YAML) holding the defaults.`,
}

// Execute adds all child commands to RootCmd and runs it. Called once by
// main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
