package models

import (
	"fmt"
	"testing"
)

func TestChunkStringsCounts(t *testing.T) {
	tests := []struct {
		n      int
		size   int
		chunks int
	}{
		{0, 500, 0},
		{1, 500, 1},
		{500, 500, 1},
		{501, 500, 2},
		{1250, 500, 3},
		{23, 10, 3},
	}

	for _, tc := range tests {
		ids := make([]string, tc.n)
		for i := range ids {
			ids[i] = fmt.Sprintf("id-%d", i)
		}
		chunks := chunkStrings(ids, tc.size)
		if len(chunks) != tc.chunks {
			t.Errorf("chunkStrings(%d, %d) = %d chunks, want %d", tc.n, tc.size, len(chunks), tc.chunks)
		}

		total := 0
		for _, chunk := range chunks {
			if len(chunk) > tc.size {
				t.Errorf("chunk of %d exceeds size %d", len(chunk), tc.size)
			}
			total += len(chunk)
		}
		if total != tc.n {
			t.Errorf("chunks cover %d ids, want %d", total, tc.n)
		}
	}
}

func TestChunkStringsPreservesOrder(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	chunks := chunkStrings(ids, 2)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	flat := append(append(append([]string{}, chunks[0]...), chunks[1]...), chunks[2]...)
	for i, id := range flat {
		if id != ids[i] {
			t.Errorf("position %d = %q, want %q", i, id, ids[i])
		}
	}
	if len(chunks[2]) != 1 || chunks[2][0] != "e" {
		t.Errorf("tail chunk = %v, want [e]", chunks[2])
	}
}

func TestFavoritesLookupChunking(t *testing.T) {
	ids := make([]string, 23)
	for i := range ids {
		ids[i] = fmt.Sprintf("ev-%d", i)
	}
	chunks := chunkStrings(ids, MaxMembershipLookup)
	if len(chunks) != 3 {
		t.Fatalf("23 favorites split into %d chunks, want 3", len(chunks))
	}
	want := []int{10, 10, 3}
	for i, chunk := range chunks {
		if len(chunk) != want[i] {
			t.Errorf("chunk %d has %d ids, want %d", i, len(chunk), want[i])
		}
	}
}
