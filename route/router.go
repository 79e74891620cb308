package route

import (
	"fmt"
	"math"

	"github.com/noire-dev/aas/aasfile"
)

// dijkstraNode is one area's state during a cluster-local relaxation pass,
// the same Pos/Cost/Total/PIdx/State shape as detour.Node but keyed by
// area number instead of polygon reference.
type dijkstraNode struct {
	area  int32
	total uint32 // best known time from the search root, in hundredths of a second
}

// dijkstraQueue is a binary min-heap over dijkstraNode.total, structurally
// the same bubbleUp/trickleDown shape as detour's nodeQueue, specialized to
// a dense area-indexed slice since InitRoutingUpdate preallocates working
// arrays sized to the world's area count rather than growing a
// hash-bucketed pool.
type dijkstraQueue struct {
	heap []int32 // area numbers, ordered by nodes[area].total
	pos  []int32 // area -> index in heap, -1 if absent
	nodes []dijkstraNode
}

func newDijkstraQueue(capacity int32) *dijkstraQueue {
	return &dijkstraQueue{
		heap:  make([]int32, 0, capacity),
		pos:   make([]int32, capacity),
		nodes: make([]dijkstraNode, capacity),
	}
}

func (q *dijkstraQueue) reset(areas []int32) {
	for i := range q.pos {
		q.pos[i] = -1
	}
	q.heap = q.heap[:0]
	for _, a := range areas {
		if int(a) >= len(q.nodes) {
			continue
		}
		q.nodes[a] = dijkstraNode{area: a, total: math.MaxUint32}
	}
}

func (q *dijkstraQueue) push(area int32, total uint32) {
	q.nodes[area].total = total
	q.heap = append(q.heap, area)
	q.bubbleUp(len(q.heap) - 1)
}

func (q *dijkstraQueue) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if q.nodes[q.heap[parent]].total <= q.nodes[q.heap[i]].total {
			break
		}
		q.heap[parent], q.heap[i] = q.heap[i], q.heap[parent]
		q.pos[q.heap[i]] = int32(i)
		i = parent
	}
	q.pos[q.heap[i]] = int32(i)
}

func (q *dijkstraQueue) trickleDown(i int) {
	n := len(q.heap)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && q.nodes[q.heap[left]].total < q.nodes[q.heap[smallest]].total {
			smallest = left
		}
		if right < n && q.nodes[q.heap[right]].total < q.nodes[q.heap[smallest]].total {
			smallest = right
		}
		if smallest == i {
			break
		}
		q.heap[i], q.heap[smallest] = q.heap[smallest], q.heap[i]
		q.pos[q.heap[i]] = int32(i)
		i = smallest
	}
	q.pos[q.heap[i]] = int32(i)
}

func (q *dijkstraQueue) empty() bool { return len(q.heap) == 0 }

func (q *dijkstraQueue) pop() int32 {
	top := q.heap[0]
	last := len(q.heap) - 1
	q.heap[0] = q.heap[last]
	q.heap = q.heap[:last]
	if len(q.heap) > 0 {
		q.pos[q.heap[0]] = 0
		q.trickleDown(0)
	}
	return top
}

func (q *dijkstraQueue) decrease(area int32, total uint32) {
	if total >= q.nodes[area].total {
		return
	}
	q.nodes[area].total = total
	if i := q.pos[area]; i >= 0 {
		q.bubbleUp(int(i))
	}
}

// Router answers (area, origin, goalArea, flags) -> (reachability, time)
// queries using the seven precomputed tables InitRouting builds once at
// map load.
type Router struct {
	w World

	areaContentsFlags []TravelFlag
	reversed          [][]reverseLink
	areaTimes         [][][]uint16
	portalMaxTimes    []uint16
	reachAreas        []int32
	reachAreaIndex    [][2]int32

	queue *dijkstraQueue

	logf func(format string, args ...interface{})
}

// World is the subset of world.World the Router depends on: reachability
// lookups, cluster/portal topology and the multi-area trace InitRouting's
// last step needs.
type World interface {
	worldView
	areaTracer
	File() *aasfile.File
}

// InitRouting runs the seven-step initialization order (InitTravelFlagFromType
// is a package-level table, steps 2-7 run here) and returns a ready Router.
// logf receives the capacity warnings CreateReversedReachability may emit;
// nil discards them.
func InitRouting(w World, logf func(format string, args ...interface{})) *Router {
	r := &Router{w: w, logf: logf}
	r.areaContentsFlags = initAreaContentsTravelFlags(w.File())
	r.reversed = createReversedReachability(w, logf)
	r.areaTimes = calculateAreaTravelTimes(w, r.reversed)
	r.portalMaxTimes = initPortalMaxTravelTimes(w.File(), r.areaTimes)
	r.reachAreas, r.reachAreaIndex = initReachabilityAreas(w.File(), w)

	// InitRoutingUpdate's working arrays are sized to max(cluster areas) and
	// numPortals+1 in the original; here one area-indexed queue serves every
	// cluster-local search since reset() only touches areas it's given.
	r.queue = newDijkstraQueue(w.NumAreas())

	return r
}

// Result is a successful route query's payload: the reachability to follow
// next, and the estimated total travel time to the goal in hundredths of a
// second.
type Result struct {
	Reach aasfile.Reachability
	Time  uint16
}

// Route answers one routing query. ok is false when no path exists or the
// inputs are invalid; per the contract, that is not an error.
func (r *Router) Route(area int32, origin [3]float32, goal int32, filter Filter) (Result, bool) {
	if area == goal {
		return Result{Time: 1}, true
	}
	numAreas := r.w.NumAreas()
	if area <= 0 || goal <= 0 || int(area) >= int(numAreas) || int(goal) >= int(numAreas) {
		if r.logf != nil {
			r.logf("route: area %d or goal %d out of range [1,%d)", area, goal, numAreas)
		}
		return Result{}, false
	}
	if len(r.w.Reachabilities(area)) == 0 || len(r.w.Reachabilities(goal)) == 0 {
		return Result{}, false
	}

	var flags TravelFlag
	if r.areaContentsFlags[area]&TFLDoNotEnter != 0 || r.areaContentsFlags[goal]&TFLDoNotEnter != 0 {
		flags |= TFLDoNotEnter
	}

	f := filter
	if f == nil {
		f = NewStandardFilter()
	}

	settings, err := areaSettings(r.w.File(), area)
	if err != nil {
		return Result{}, false
	}
	goalSettings, err := areaSettings(r.w.File(), goal)
	if err != nil {
		return Result{}, false
	}

	sameCluster := settings.Cluster > 0 && settings.Cluster == goalSettings.Cluster
	if sameCluster {
		if res, ok := r.routeWithinCluster(area, origin, goal, f, flags); ok {
			return res, true
		}
		return Result{}, false
	}
	return r.routeAcrossPortals(area, origin, goal, f, flags)
}

func areaSettings(f *aasfile.File, area int32) (aasfile.AreaSettings, error) {
	if area <= 0 || int(area) >= len(f.AreaSettings) {
		return aasfile.AreaSettings{}, fmt.Errorf("route: area %d out of range", area)
	}
	return f.AreaSettings[area], nil
}

// routeWithinCluster runs a Dijkstra relaxation over the reversed
// reachability graph starting from goal, draining the queue to exhaustion,
// then reports area's best outgoing reachability toward the settled
// frontier.
func (r *Router) routeWithinCluster(area int32, origin [3]float32, goal int32, f Filter, restrict TravelFlag) (Result, bool) {
	numAreas := r.w.NumAreas()
	dist := make([]uint32, numAreas)
	for i := range dist {
		dist[i] = math.MaxUint32
	}
	dist[goal] = 0

	r.queue.reset([]int32{goal})
	r.queue.push(goal, 0)

	// Runs to exhaustion rather than stopping once area is popped: area's
	// own outgoing reachabilities may point at areas farther from goal than
	// area itself, whose dist entries would otherwise still be unresolved.
	for !r.queue.empty() {
		cur := r.queue.pop()
		for _, link := range r.reversed[cur] {
			reach := r.w.Reachabilities(link.sourceArea)
			if int(link.reachIndex) >= len(reach) {
				continue
			}
			rdata := reach[link.reachIndex]
			tflag := travelFlagOf(aasfile.TravelType(rdata.TravelType))
			if !f.Allowed(tflag | restrict | r.areaContentsFlags[rdata.AreaNum]) {
				continue
			}
			alt := dist[cur] + uint32(rdata.TravelTime)
			if alt < dist[link.sourceArea] {
				dist[link.sourceArea] = alt
				if r.queue.pos[link.sourceArea] >= 0 {
					r.queue.decrease(link.sourceArea, alt)
				} else {
					r.queue.push(link.sourceArea, alt)
				}
			}
		}
	}

	if dist[area] == math.MaxUint32 {
		return Result{}, false
	}

	best, bestTime, found := r.bestOutgoing(area, origin, dist, f, restrict)
	if !found {
		return Result{}, false
	}
	return Result{Reach: best, Time: uint16(clampTime(bestTime))}, true
}

// bestOutgoing picks area's outgoing reachability minimizing the approach
// cost from origin plus the remaining distance-to-goal estimate in dist.
func (r *Router) bestOutgoing(area int32, origin [3]float32, dist []uint32, f Filter, restrict TravelFlag) (aasfile.Reachability, uint32, bool) {
	reach := r.w.Reachabilities(area)
	var best aasfile.Reachability
	var bestTotal uint32 = math.MaxUint32
	found := false
	for _, rdata := range reach {
		tflag := travelFlagOf(aasfile.TravelType(rdata.TravelType))
		if !f.Allowed(tflag | restrict | r.areaContentsFlags[rdata.AreaNum]) {
			continue
		}
		if int(rdata.AreaNum) >= len(dist) || dist[rdata.AreaNum] == math.MaxUint32 {
			continue
		}
		approach := approachTime(origin, rdata.Start)
		total := approach + uint32(rdata.TravelTime) + dist[rdata.AreaNum]
		if total < bestTotal {
			bestTotal = total
			best = rdata
			found = true
		}
	}
	return best, bestTotal, found
}

func approachTime(from, to [3]float32) uint32 {
	dx, dy, dz := to[0]-from[0], to[1]-from[1], to[2]-from[2]
	dist := sqrt32(dx*dx + dy*dy + dz*dz)
	return uint32(travelTime(dist, float32(SpeedFactorWalk)))
}

// routeAcrossPortals iterates the portals of area's cluster, picking the
// one minimizing portalMaxTravelTimes[portal] plus the approach time from
// origin to that portal's first outgoing reachability.
func (r *Router) routeAcrossPortals(area int32, origin [3]float32, goal int32, f Filter, restrict TravelFlag) (Result, bool) {
	settings, err := areaSettings(r.w.File(), area)
	if err != nil || settings.Cluster <= 0 {
		return Result{}, false
	}
	clusters := r.w.File().Clusters
	if int(settings.Cluster) >= len(clusters) {
		return Result{}, false
	}
	cluster := clusters[settings.Cluster]

	reach := r.w.Reachabilities(area)
	var best aasfile.Reachability
	var bestTotal uint32 = math.MaxUint32
	found := false

	portals := r.w.File().PortalIndex
	for pi := int32(0); pi < cluster.NumPortals; pi++ {
		if int(cluster.FirstPortal+pi) >= len(portals) {
			continue
		}
		portalArea := portals[cluster.FirstPortal+pi]
		for _, rdata := range reach {
			if rdata.AreaNum != portalArea {
				continue
			}
			tflag := travelFlagOf(aasfile.TravelType(rdata.TravelType))
			if !f.Allowed(tflag | restrict | r.areaContentsFlags[rdata.AreaNum]) {
				continue
			}
			var portalMax uint32
			if int(pi) < len(r.portalMaxTimes) {
				portalMax = uint32(r.portalMaxTimes[pi])
			}
			total := approachTime(origin, rdata.Start) + portalMax
			if total < bestTotal {
				bestTotal = total
				best = rdata
				found = true
			}
		}
	}
	if !found {
		return Result{}, false
	}
	return Result{Reach: best, Time: uint16(clampTime(bestTotal))}, true
}

func clampTime(t uint32) uint32 {
	if t < 1 {
		return 1
	}
	if t > math.MaxUint16 {
		return math.MaxUint16
	}
	return t
}
