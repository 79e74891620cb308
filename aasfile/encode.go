package aasfile

import (
	"bytes"
	"encoding/binary"
)

// Encode serializes f to the lumped binary format Decode reads back. It
// exists for building small in-memory fixtures in tests; production AAS
// files are produced by a map compiler outside this module's scope.
func (f *File) Encode() ([]byte, error) {
	var body bytes.Buffer
	var dir [numLumps]lumpEntry

	write := func(l Lump, v interface{}) error {
		off := body.Len()
		if err := binary.Write(&body, binary.LittleEndian, v); err != nil {
			return err
		}
		dir[l] = lumpEntry{FileOfs: int32(off), FileLen: int32(body.Len() - off)}
		return nil
	}

	if err := write(LumpBBoxes, f.BBoxes); err != nil {
		return nil, err
	}
	if err := write(LumpVertexes, f.Verts); err != nil {
		return nil, err
	}
	if err := write(LumpPlanes, f.Planes); err != nil {
		return nil, err
	}
	if err := write(LumpEdges, f.Edges); err != nil {
		return nil, err
	}
	if err := write(LumpEdgeIndex, f.EdgeIndex); err != nil {
		return nil, err
	}
	if err := write(LumpFaces, f.Faces); err != nil {
		return nil, err
	}
	if err := write(LumpFaceIndex, f.FaceIndex); err != nil {
		return nil, err
	}
	if err := write(LumpAreas, f.Areas); err != nil {
		return nil, err
	}
	if err := write(LumpAreaSettings, f.AreaSettings); err != nil {
		return nil, err
	}
	if err := write(LumpReachability, f.Reachability); err != nil {
		return nil, err
	}
	if err := write(LumpNodes, f.Nodes); err != nil {
		return nil, err
	}
	if err := write(LumpPortals, f.Portals); err != nil {
		return nil, err
	}
	if err := write(LumpPortalIndex, f.PortalIndex); err != nil {
		return nil, err
	}
	if err := write(LumpClusters, f.Clusters); err != nil {
		return nil, err
	}

	// header + directory precede the body; shift every recorded offset by
	// their combined size.
	headerSize := binary.Size(Header{})
	dirSize := binary.Size(dir)
	shift := int32(headerSize + dirSize)
	for i := range dir {
		if dir[i].FileLen > 0 {
			dir[i].FileOfs += shift
		}
	}

	var out bytes.Buffer
	hdr := f.Header
	hdr.Magic = Magic
	hdr.Version = Version
	if err := binary.Write(&out, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}
	if err := binary.Write(&out, binary.LittleEndian, dir); err != nil {
		return nil, err
	}
	out.Write(body.Bytes())
	return out.Bytes(), nil
}
