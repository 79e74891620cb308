package aaslib

// EntityState is the per-tick snapshot a host pushes via UpdateEntity: the
// Go shape of bot_entitystate_t.
type EntityState struct {
	Type        int32
	Flags       int32
	Origin      [3]float32
	Angles      [3]float32
	OldOrigin   [3]float32
	Mins        [3]float32
	Maxs        [3]float32
	GroundEnt   int32
	Solid       int32
	ModelIndex  int32
	ModelIndex2 int32
	Frame       int32
	Event       int32
	EventParm   int32
	Powerups    int32
	Weapon      int32
	LegsAnim    int32
	TorsoAnim   int32
}

// Import is the set of host-provided services the library calls back
// into: the Go interface replacing botlib_import_t's function-pointer
// table.
type Import interface {
	Printer

	// Trace sweeps a box from start to end against the static world,
	// ignoring passEnt. EntityTrace does the same against one entity.
	Trace(start, mins, maxs, end [3]float32, passEnt int32, contentMask int32) (fraction float32, endPos [3]float32, normal [3]float32, startSolid bool)
	EntityTrace(start, mins, maxs, end [3]float32, entNum int32, contentMask int32) (fraction float32, endPos [3]float32, normal [3]float32, startSolid bool)

	PointContents(point [3]float32) int32
	BSPEntityData() (string, error)

	BotClientCommand(client int32, command string)

	// Milliseconds is Sys_Milliseconds: a monotonic clock in milliseconds.
	// The library does not call it; reachability timeouts use the time
	// passed to StartFrame.
	Milliseconds() int64

	// OpenAASFile opens name for reading, relative to the host's
	// filesystem roots. The caller closes it.
	OpenAASFile(name string) (ReadSeekCloser, error)
}

// ReadSeekCloser is the minimal file handle LoadMap needs from the host's
// virtual filesystem.
type ReadSeekCloser interface {
	Read(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Close() error
}
