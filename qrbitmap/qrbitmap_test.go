package qrbitmap

import "testing"

func TestEncode(t *testing.T) {
	bm, err := Encode("https://example.com/abc123", 200)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := bm.Size(); got != 200 {
		t.Errorf("Size got %v, want 200", got)
	}
	for i, row := range bm {
		if len(row) != bm.Size() {
			t.Fatalf("row %v has %v cells, want %v (bitmap must be square)", i, len(row), bm.Size())
		}
	}
	if n := bm.Count(); n == 0 || n == 200*200 {
		t.Errorf("Count got %v, want a mix of marks and background", n)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode("https://example.com", 200)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode("https://example.com", 200)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if a.Size() != b.Size() {
		t.Fatalf("sizes differ: %v vs %v", a.Size(), b.Size())
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("bitmaps differ at (%v,%v)", i, j)
			}
		}
	}
}

func TestResample(t *testing.T) {
	in := Bitmap{
		{true, false},
		{false, true},
	}

	tests := []struct {
		name string
		px   int
		want Bitmap
	}{
		{
			name: "upscale 2x",
			px:   4,
			want: Bitmap{
				{true, true, false, false},
				{true, true, false, false},
				{false, false, true, true},
				{false, false, true, true},
			},
		},
		{
			name: "same size",
			px:   2,
			want: in,
		},
		{
			name: "downscale to 1",
			px:   1,
			want: Bitmap{{true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := in.Resample(tt.px)
			if got.Size() != tt.want.Size() {
				t.Fatalf("Size got %v, want %v", got.Size(), tt.want.Size())
			}
			for i := range tt.want {
				for j := range tt.want[i] {
					if got[i][j] != tt.want[i][j] {
						t.Errorf("cell (%v,%v) got %v, want %v", i, j, got[i][j], tt.want[i][j])
					}
				}
			}
		})
	}
}

func TestCount(t *testing.T) {
	bm := Bitmap{
		{true, false, true},
		{false, false, false},
		{true, true, true},
	}
	if got := bm.Count(); got != 5 {
		t.Errorf("Count got %v, want 5", got)
	}
}
