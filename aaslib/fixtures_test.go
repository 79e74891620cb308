package aaslib

import (
	"bytes"
	"fmt"
	"io"

	"github.com/noire-dev/aas/aasfile"
)

// fakeImport is a minimal Import for tests: no entity collision, no
// logging output, and a single in-memory AAS file keyed by name.
type fakeImport struct {
	files map[string][]byte
	logs  []string
}

func newFakeImport() *fakeImport { return &fakeImport{files: map[string][]byte{}} }

func (f *fakeImport) Print(level PrintLevel, format string, args ...interface{}) {
	f.logs = append(f.logs, fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...)))
}

func (f *fakeImport) Trace(start, mins, maxs, end [3]float32, passEnt int32, contentMask int32) (float32, [3]float32, [3]float32, bool) {
	return 1, end, [3]float32{}, false
}

func (f *fakeImport) EntityTrace(start, mins, maxs, end [3]float32, entNum int32, contentMask int32) (float32, [3]float32, [3]float32, bool) {
	return 1, end, [3]float32{}, false
}

func (f *fakeImport) PointContents(point [3]float32) int32 { return 0 }

func (f *fakeImport) BSPEntityData() (string, error) { return "", nil }

func (f *fakeImport) BotClientCommand(client int32, command string) {}

func (f *fakeImport) Milliseconds() int64 { return 0 }

type closingReader struct{ *bytes.Reader }

func (c closingReader) Close() error { return nil }

func (f *fakeImport) OpenAASFile(name string) (ReadSeekCloser, error) {
	buf, ok := f.files[name]
	if !ok {
		return nil, fmt.Errorf("no such file %q", name)
	}
	return closingReader{bytes.NewReader(buf)}, nil
}

var _ io.ReadSeeker = closingReader{}

func oneAreaFile() *aasfile.File {
	return &aasfile.File{
		Planes: []aasfile.Plane{
			{Normal: [3]float32{0, 0, 1}, Dist: 0, Type: 2},
			{Normal: [3]float32{0, 0, 1}, Dist: 64, Type: 2},
		},
		Nodes: []aasfile.Node{
			{},
			{PlaneNum: 0, Children: [2]int32{2, 0}},
			{PlaneNum: 1, Children: [2]int32{0, -1}},
		},
		Areas:        []aasfile.Area{{}, {}},
		AreaSettings: []aasfile.AreaSettings{{}, {Presencetype: aasfile.PresenceNormal | aasfile.PresenceCrouch}},
	}
}
