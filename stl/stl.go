// Package stl provides a streaming binary STL file writer and a
// matching reader.
package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/treasures-to/qr3d/mesh"
)

const (
	headerSize = 80
	bufSize    = 10000
)

// Client is a streaming binary STL file writer client.
type Client struct {
	wg sync.WaitGroup // ensures file is closed
	ch chan Tri

	mu  sync.RWMutex
	err error
}

// Tri represents an STL triangle.
type Tri struct {
	// Normal plus three vertex triplets: [3]float{x,y,z}
	N, V1, V2, V3 [3]float32
	_             uint16 // unused attribute byte count
}

// New creates a new streaming binary STL file writer.
func New(filename string) (*Client, error) {
	out, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	// Write header
	header := struct {
		_ [headerSize]uint8
		_ uint32 // count will be overwritten on channel close.
	}{}
	if err := binary.Write(out, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("error writing header: %v", err)
	}

	ch := make(chan Tri, bufSize)
	c := &Client{
		ch: ch,
	}
	c.start(out)
	return c, nil
}

func (c *Client) start(out writeSeekCloser) {
	c.wg.Add(1)
	go func() {
		err := writer(out, c.ch)
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		c.wg.Done()
	}()
}

// Write writes a triangle to the STL file.
func (c *Client) Write(t *Tri) error {
	c.ch <- *t
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Close finalizes the STL file.
func (c *Client) Close() error {
	close(c.ch)
	c.wg.Wait()
	return c.err
}

type writeSeekCloser interface {
	io.Writer
	io.Seeker
	io.Closer
}

func writer(out writeSeekCloser, ch <-chan Tri) error {
	var count uint32
	for t := range ch {
		if err := binary.Write(out, binary.LittleEndian, &t); err != nil {
			return fmt.Errorf("write triangle %#v: %v", t, err)
		}
		count++
	}

	if _, err := out.Seek(headerSize, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %v", err)
	}

	if err := binary.Write(out, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("write count %v: %v", count, err)
	}

	return out.Close()
}

// FromMesh converts a mesh triangle to its STL representation.
func FromMesh(t mesh.Tri) Tri {
	n := t.Normal()
	return Tri{
		N:  [3]float32{float32(n[0]), float32(n[1]), float32(n[2])},
		V1: [3]float32{float32(t[0][0]), float32(t[0][1]), float32(t[0][2])},
		V2: [3]float32{float32(t[1][0]), float32(t[1][1]), float32(t[1][2])},
		V3: [3]float32{float32(t[2][0]), float32(t[2][1]), float32(t[2][2])},
	}
}

// WriteFile concatenates the triangles of all meshes into a single
// binary STL file and returns the triangle count. No color metadata
// is written; two-color prints use a filament change at the base
// height instead.
func WriteFile(filename string, meshes ...*mesh.Mesh) (int, error) {
	c, err := New(filename)
	if err != nil {
		return 0, err
	}
	var count int
	for _, m := range meshes {
		for _, t := range m.Tris() {
			st := FromMesh(t)
			if err := c.Write(&st); err != nil {
				c.Close()
				return count, err
			}
			count++
		}
	}
	return count, c.Close()
}

// ReadFile reads a binary STL file back into mesh triangles. Normals
// stored in the file are discarded; consumers recompute them from the
// winding order.
func ReadFile(filename string) ([]mesh.Tri, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var header struct {
		_    [headerSize]byte
		NTri uint32
	}
	if err := binary.Read(f, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %v", err)
	}

	tris := make([]mesh.Tri, 0, header.NTri)
	buf := make([]byte, 4*3*4+2) // normal + 3 vertices + attribute count
	for i := 0; i < int(header.NTri); i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return nil, fmt.Errorf("read triangle %v: %v", i, err)
		}
		var t mesh.Tri
		for v := 0; v < 3; v++ {
			const start = 3 * 4 // skip normal
			for c := 0; c < 3; c++ {
				bits := binary.LittleEndian.Uint32(buf[start+12*v+4*c:])
				t[v][c] = float64(math.Float32frombits(bits))
			}
		}
		tris = append(tris, t)
	}
	return tris, nil
}
