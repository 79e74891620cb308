package cmd

import (
	"fmt"

	"github.com/noire-dev/aas/route"
	"github.com/noire-dev/aas/world"
	"github.com/spf13/cobra"
)

var routeFromArea, routeToArea int32

// routeCmd represents the route command.
var routeCmd = &cobra.Command{
	Use:   "route AASFILE",
	Short: "run a single route query between two areas",
	Long: `Load an AAS file, initialize the router and report the first
reachability and estimated travel time --from area to --to area.`,
	Args: cobra.ExactArgs(1),
	Run:  doRoute,
}

func init() {
	RootCmd.AddCommand(routeCmd)
	routeCmd.Flags().Int32Var(&routeFromArea, "from", 0, "origin area number (required)")
	routeCmd.Flags().Int32Var(&routeToArea, "to", 0, "goal area number (required)")
}

func doRoute(cmd *cobra.Command, args []string) {
	f := openAASFile(args[0])
	defer f.Close()

	w, err := world.Load(f, 0)
	check(err)

	router := route.InitRouting(w, func(format string, args ...interface{}) {
		fmt.Printf("warning: "+format+"\n", args...)
	})

	_, err = w.AreaSettings(routeFromArea)
	check(err)

	origin := [3]float32{0, 0, 0}
	result, ok := router.Route(routeFromArea, origin, routeToArea, route.NewStandardFilter())
	if !ok {
		fmt.Printf("no route from area %d to area %d\n", routeFromArea, routeToArea)
		return
	}
	fmt.Printf("next reachability: area %d -> area %d, travel type %d, time %d\n",
		routeFromArea, result.Reach.AreaNum, result.Reach.TravelType, result.Time)
}
