package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/noire-dev/aas/aaslib"
	"github.com/noire-dev/aas/goal"
	"github.com/noire-dev/aas/route"
	"github.com/spf13/cobra"
)

var (
	tickFromArea, tickGoalArea     int32
	tickFromOrigin, tickGoalOrigin string
	tickFrames                     int
)

// tickCmd represents the tick command.
var tickCmd = &cobra.Command{
	Use:   "tick AASFILE",
	Short: "drive a fake bot through MoveToGoal for a handful of frames",
	Long: `Load an AAS file into a Library, allocate one movement state at
--from-origin in area --from, heading for --goal-origin in area --goal, and
print the dispatched travel type and failure/blocked flags for --frames
ticks. Useful for sanity-checking a reachability chain without a live game
host.`,
	Args: cobra.ExactArgs(1),
	Run:  doTick,
}

func init() {
	RootCmd.AddCommand(tickCmd)
	tickCmd.Flags().Int32Var(&tickFromArea, "from", 0, "starting area number (required)")
	tickCmd.Flags().Int32Var(&tickGoalArea, "goal", 0, "goal area number (required)")
	tickCmd.Flags().StringVar(&tickFromOrigin, "from-origin", "0,0,0", "starting origin, \"x,y,z\"")
	tickCmd.Flags().StringVar(&tickGoalOrigin, "goal-origin", "0,0,0", "goal origin, \"x,y,z\"")
	tickCmd.Flags().IntVar(&tickFrames, "frames", 10, "number of MoveToGoal ticks to run")
}

func parseVec3(s string) [3]float32 {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		fmt.Printf("error, %q is not a \"x,y,z\" triple\n", s)
		os.Exit(1)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		check(err)
		v[i] = float32(f)
	}
	return v
}

// cliImport is a headless aaslib.Import for the CLI: traces never hit
// anything (no entity list, no static geometry beyond the AAS file's own
// BSP), and logging goes to stderr.
type cliImport struct{ path string }

func (c cliImport) Print(level aaslib.PrintLevel, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

func (c cliImport) Trace(start, mins, maxs, end [3]float32, passEnt int32, contentMask int32) (float32, [3]float32, [3]float32, bool) {
	return 1, end, [3]float32{}, false
}

func (c cliImport) EntityTrace(start, mins, maxs, end [3]float32, entNum int32, contentMask int32) (float32, [3]float32, [3]float32, bool) {
	return 1, end, [3]float32{}, false
}

func (c cliImport) PointContents(point [3]float32) int32 { return 0 }

func (c cliImport) BSPEntityData() (string, error) { return "", nil }

func (c cliImport) BotClientCommand(client int32, command string) {}

func (c cliImport) Milliseconds() int64 { return time.Now().UnixMilli() }

type fileCloser struct{ *os.File }

func (c cliImport) OpenAASFile(name string) (aaslib.ReadSeekCloser, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, err
	}
	return fileCloser{f}, nil
}

func doTick(cmd *cobra.Command, args []string) {
	imp := cliImport{path: args[0]}
	fromOrigin := parseVec3(tickFromOrigin)
	goalOrigin := parseVec3(tickGoalOrigin)

	fmt.Printf("from area %d at %v, goal area %d at %v\n", tickFromArea, fromOrigin, tickGoalArea, goalOrigin)

	lib := aaslib.NewLibrary()
	check(statusErr(lib.Setup(imp, aaslib.DefaultSettings())))
	check(statusErr(lib.LoadMap(args[0])))
	check(statusErr(lib.StartFrame(0)))

	handle, err := lib.AI().AllocMoveState()
	check(err)
	lib.AI().InitMoveState(handle, aaslib.InitMove{
		Origin:       fromOrigin,
		EntityNum:    0,
		Client:       0,
		PresenceType: 1,
	})

	g := goal.Goal{
		Number:  1,
		AreaNum: tickGoalArea,
		Origin:  goalOrigin,
		Mins:    [3]float32{-8, -8, -8},
		Maxs:    [3]float32{8, 8, 8},
	}

	for i := 0; i < tickFrames; i++ {
		check(statusErr(lib.StartFrame(float64(i))))
		res := lib.AI().MoveToGoal(handle, g, route.DefaultTravelFlags)
		fmt.Printf("frame %2d: travel=%v failure=%v(%v) blocked=%v\n",
			i, res.TravelType, res.Failure, res.FailureReason, res.Blocked)
		if lib.AI().TouchingGoal(fromOrigin, g) {
			fmt.Println("goal reached")
			break
		}
	}
}

func statusErr(s aaslib.Status) error {
	if aaslib.StatusFailed(s) {
		return s
	}
	return nil
}
