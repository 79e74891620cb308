package cmd

import (
	"fmt"

	"github.com/noire-dev/aas/world"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command.
var inspectCmd = &cobra.Command{
	Use:   "inspect AASFILE",
	Short: "show area/reachability/cluster counts for an .aas file",
	Long: `Decode an AAS file from binary format and print the record counts
of its plane, node, area, reachability, cluster and portal lumps, plus the
number of areas with outgoing reachabilities, to standard output.`,
	Args: cobra.ExactArgs(1),
	Run:  doInspect,
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}

func doInspect(cmd *cobra.Command, args []string) {
	f := openAASFile(args[0])
	defer f.Close()

	w, err := world.Load(f, 0)
	check(err)

	file := w.File()
	fmt.Printf("planes:        %d\n", len(file.Planes))
	fmt.Printf("nodes:         %d\n", len(file.Nodes))
	fmt.Printf("areas:         %d\n", len(file.Areas))
	fmt.Printf("reachability:  %d\n", len(file.Reachability))
	fmt.Printf("clusters:      %d\n", len(file.Clusters))
	fmt.Printf("portals:       %d\n", len(file.Portals))

	withReach := 0
	for area := int32(1); area < w.NumAreas(); area++ {
		if len(w.Reachabilities(area)) > 0 {
			withReach++
		}
	}
	fmt.Printf("areas with outgoing reachabilities: %d/%d\n", withReach, len(file.Areas)-1)
}
