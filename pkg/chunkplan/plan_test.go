package chunkplan

import "testing"

const gib = int64(1024 * 1024 * 1024)

func TestPlanTilesExactly(t *testing.T) {
	tests := []struct {
		name      string
		fileSize  int64
		chunkSize int64
		want      int
	}{
		{"empty file", 0, gib, 0},
		{"smaller than chunk", 100, gib, 1},
		{"exact multiple", 3 * gib, gib, 3},
		{"partial last chunk", 2*gib + gib/2, gib, 3},
		{"one byte over", 2*gib + 1, gib, 3},
		{"tiny chunks", 1000, 256, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Plan(tt.fileSize, tt.chunkSize)
			if len(chunks) != tt.want {
				t.Fatalf("got %d chunks, want %d", len(chunks), tt.want)
			}
			if got := Count(tt.fileSize, tt.chunkSize); got != tt.want {
				t.Errorf("Count = %d, want %d", got, tt.want)
			}

			// Chunks must tile [0, fileSize) with no gaps or overlaps.
			var next int64
			var total int64
			for i, c := range chunks {
				if c.Index != i {
					t.Errorf("chunk %d has index %d", i, c.Index)
				}
				if c.Offset != next {
					t.Errorf("chunk %d offset = %d, want %d", i, c.Offset, next)
				}
				if c.Length <= 0 {
					t.Errorf("chunk %d has non-positive length %d", i, c.Length)
				}
				if i < len(chunks)-1 && c.Length != tt.chunkSize {
					t.Errorf("chunk %d length = %d, want %d", i, c.Length, tt.chunkSize)
				}
				next = c.Offset + c.Length
				total += c.Length
			}
			if total != tt.fileSize {
				t.Errorf("total length = %d, want %d", total, tt.fileSize)
			}
		})
	}
}

func TestPlanThreeGiB(t *testing.T) {
	chunks := Plan(3*gib, gib)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	for i, c := range chunks {
		if c.Offset != int64(i)*gib {
			t.Errorf("chunk %d offset = %d, want %d", i, c.Offset, int64(i)*gib)
		}
		if c.Length != gib {
			t.Errorf("chunk %d length = %d, want %d", i, c.Length, gib)
		}
	}
}

func TestPlanShortLastChunk(t *testing.T) {
	chunks := Plan(2*gib+gib/2, gib)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	last := chunks[2]
	if last.Offset != 2*gib {
		t.Errorf("last offset = %d, want %d", last.Offset, 2*gib)
	}
	if last.Length != gib/2 {
		t.Errorf("last length = %d, want %d", last.Length, gib/2)
	}
}
