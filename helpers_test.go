package n3m

import (
	"encoding/binary"
	"math"
)

type testVertex struct {
	z, x, y float32
	u, v    float32
}

type testBlock struct {
	vertices []testVertex
	faces    [][3]uint16
	texture  string
}

// buildPayload lays out an n3m payload: header, vertex directory, face
// directory, gap, texture directory, then vertex, face and name records.
func buildPayload(blocks []testBlock, layout TextureLayout, gap int) []byte {
	n := len(blocks)
	dirEnd := N3M_HEADER_SIZE + n*2*N3M_DIRECTORY_ENTRY_SIZE + gap + n*layout.entrySize()

	var body []byte
	vertexStarts := make([]int, n)
	faceStarts := make([]int, n)
	nameStarts := make([]int, n)
	for i, b := range blocks {
		vertexStarts[i] = dirEnd + len(body)
		for _, v := range b.vertices {
			body = appendFloat32(body, v.z)
			body = appendFloat32(body, v.x)
			body = appendFloat32(body, v.y)
		}
		for _, v := range b.vertices {
			body = appendFloat32(body, v.u)
			body = appendFloat32(body, v.v)
		}
		faceStarts[i] = dirEnd + len(body)
		for _, f := range b.faces {
			for _, idx := range f {
				body = binary.LittleEndian.AppendUint16(body, idx)
			}
		}
		nameStarts[i] = dirEnd + len(body)
		body = append(body, byte(len(b.texture)))
		body = append(body, b.texture...)
	}

	buf := make([]byte, 0, dirEnd+len(body))
	buf = appendInt32(buf, 0)
	buf = appendInt32(buf, n)
	buf = appendInt32(buf, 0)
	for i, b := range blocks {
		buf = appendInt32(buf, vertexStarts[i])
		buf = appendInt32(buf, len(b.vertices))
	}
	for i, b := range blocks {
		buf = appendInt32(buf, faceStarts[i])
		buf = appendInt32(buf, len(b.faces))
	}
	buf = append(buf, make([]byte, gap)...)
	for i, b := range blocks {
		if layout == TextureLayoutQuads {
			buf = appendInt32(buf, 1)
			buf = appendInt32(buf, i)
			buf = appendInt32(buf, nameStarts[i])
			buf = appendInt32(buf, nameStarts[i]+1+len(b.texture))
		} else {
			buf = appendInt32(buf, i)
			buf = appendInt32(buf, nameStarts[i])
		}
	}
	return append(buf, body...)
}

func appendInt32(b []byte, v int) []byte {
	return binary.LittleEndian.AppendUint32(b, uint32(int32(v)))
}

func appendFloat32(b []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
}

func triangleBlock(texture string) testBlock {
	return testBlock{
		vertices: []testVertex{
			{z: 0, x: 0, y: 0, u: 0, v: 0},
			{z: 32768, x: 256, y: 0, u: 1, v: 0},
			{z: 65536, x: 0, y: 512, u: 0, v: 1},
		},
		faces:   [][3]uint16{{0, 1, 2}},
		texture: texture,
	}
}
