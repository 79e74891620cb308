package aasfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxFixture() *File {
	return &File{
		Header: Header{BSPChecksum: 0x1badb002},
		Verts: []float32{
			-100, -100, 0,
			100, -100, 0,
			100, 100, 0,
			-100, 100, 0,
			-100, -100, 64,
			100, -100, 64,
			100, 100, 64,
			-100, 100, 64,
		},
		Planes: []Plane{
			{Normal: [3]float32{0, 0, 1}, Dist: 0, Type: 2},
			{Normal: [3]float32{0, 0, 1}, Dist: 64, Type: 2},
		},
		Areas:        []Area{{}, {FirstFace: 0, NumFaces: 0}},
		AreaSettings: []AreaSettings{{}, {Presencetype: PresenceNormal | PresenceCrouch}},
		Nodes: []Node{
			{PlaneNum: 0, Children: [2]int32{-1, 0}},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := boxFixture()
	buf, err := want.Encode()
	require.NoError(t, err)

	got, err := Decode(bytes.NewReader(buf))
	require.NoError(t, err)

	assert.Equal(t, want.Verts, got.Verts)
	assert.Equal(t, want.Planes, got.Planes)
	assert.Equal(t, want.AreaSettings, got.AreaSettings)
	assert.Equal(t, want.Nodes, got.Nodes)
	assert.Equal(t, int32(0x1badb002), got.Header.BSPChecksum)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	buf, err := boxFixture().Encode()
	require.NoError(t, err)
	buf[0] ^= 0xff

	_, err = Decode(bytes.NewReader(buf))
	assert.Error(t, err)
}

func TestDecodeRejectsBadVersion(t *testing.T) {
	buf, err := boxFixture().Encode()
	require.NoError(t, err)
	// Version follows Magic, both int32 little-endian.
	buf[4] = 0xff
	buf[5] = 0xff

	_, err = Decode(bytes.NewReader(buf))
	assert.Error(t, err)
}

func TestCheckBSP(t *testing.T) {
	f := boxFixture()
	assert.NoError(t, f.CheckBSP(0x1badb002))
	assert.Error(t, f.CheckBSP(0x1))
}
