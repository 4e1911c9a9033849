package stl

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/treasures-to/qr3d/mesh"
)

func TestWriter(t *testing.T) {
	tests := []struct {
		name string
		tris []Tri
	}{
		{
			name: "no triangles",
		},
		{
			name: "two triangles",
			tris: []Tri{
				{N: [3]float32{0, 0, 1}, V1: [3]float32{0, 0, 0}, V2: [3]float32{1, 0, 0}, V3: [3]float32{0, 1, 0}},
				{N: [3]float32{0, 0, -1}, V1: [3]float32{0, 0, 0}, V2: [3]float32{0, 1, 0}, V3: [3]float32{1, 0, 0}},
			},
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v: %v", i, tt.name), func(t *testing.T) {
			out := &fakeFile{}
			ch := make(chan Tri, bufSize)
			c := &Client{ch: ch}
			c.start(out)

			for i, tri := range tt.tris {
				if err := c.Write(&tri); err != nil {
					t.Fatalf("c.Write: i=%v, %v", i, err)
				}
			}
			if err := c.Close(); err != nil {
				t.Fatalf("c.Close: %v", err)
			}

			if out.closes != 1 {
				t.Errorf("expected 1 close, got %v", out.closes)
			}
			if out.seeks != 1 {
				t.Errorf("expected 1 seek, got %v", out.seeks)
			}
			if out.writes != len(tt.tris)+1 { // +1 for the final count
				t.Errorf("expected %v writes, got %v", len(tt.tris), out.writes)
			}
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	m := mesh.New("box", 0)
	m.AddAll(mesh.Box(0, 0, 0, 2, 4, 1.5))

	filename := filepath.Join(t.TempDir(), "box.stl")
	count, err := WriteFile(filename, m)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if count != 12 {
		t.Errorf("WriteFile count got %v, want 12", count)
	}

	got, err := ReadFile(filename)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := m.Tris()
	if len(got) != len(want) {
		t.Fatalf("ReadFile got %v triangles, want %v", len(got), len(want))
	}
	// All coordinates used here are exact in float32.
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triangle %v got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFromMesh(t *testing.T) {
	tri := mesh.Tri{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	st := FromMesh(tri)
	if st.N != [3]float32{0, 0, 1} {
		t.Errorf("normal got %v, want {0 0 1}", st.N)
	}
	if st.V2 != [3]float32{1, 0, 0} {
		t.Errorf("V2 got %v, want {1 0 0}", st.V2)
	}
}

type fakeFile struct {
	closes int
	seeks  int
	writes int
}

func (f *fakeFile) Close() error {
	f.closes++
	return nil
}

func (f *fakeFile) Seek(offset int64, whence int) (int64, error) {
	f.seeks++
	return 0, nil
}

func (f *fakeFile) Write(p []byte) (n int, err error) {
	f.writes++
	return 0, nil
}
