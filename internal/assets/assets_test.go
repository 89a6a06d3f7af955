package assets

import (
	"errors"
	"testing"
)

type program struct {
	vertex, fragment string
}

func TestGetOrLoadCaches(t *testing.T) {
	table := NewTable[program, uint32](nil)
	loads := 0
	load := func() (uint32, error) {
		loads++
		return uint32(loads), nil
	}

	key := program{"lit.vert", "lit.frag"}
	first, err := table.GetOrLoad(key, load)
	if err != nil {
		t.Fatalf("GetOrLoad() error = %v", err)
	}
	second, err := table.GetOrLoad(key, load)
	if err != nil {
		t.Fatalf("GetOrLoad() error = %v", err)
	}

	if first != second {
		t.Errorf("GetOrLoad() = %d then %d, want the cached value", first, second)
	}
	if loads != 1 {
		t.Errorf("load called %d times, want 1", loads)
	}
	if hits, misses := table.Stats(); hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses, want 1, 1", hits, misses)
	}

	// The pair is the key, not either file alone.
	other, _ := table.GetOrLoad(program{"lit.vert", "flat.frag"}, load)
	if other == first {
		t.Error("different shader pair returned the same program")
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	table := NewTable[string, int](nil)
	errMissing := errors.New("missing")

	if _, err := table.GetOrLoad("wood.png", func() (int, error) { return 0, errMissing }); !errors.Is(err, errMissing) {
		t.Fatalf("GetOrLoad() error = %v, want %v", err, errMissing)
	}
	if _, ok := table.Get("wood.png"); ok {
		t.Error("failed load was cached")
	}

	v, err := table.GetOrLoad("wood.png", func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Errorf("GetOrLoad() retry = %d, %v, want 7, nil", v, err)
	}
}

func TestCloseReleasesInReverseOrder(t *testing.T) {
	var released []string
	table := NewTable[string, string](func(v string) { released = append(released, v) })

	for _, name := range []string{"flat", "colour", "lit"} {
		if _, err := table.GetOrLoad(name, func() (string, error) { return name, nil }); err != nil {
			t.Fatalf("GetOrLoad(%s) error = %v", name, err)
		}
	}

	table.Close()
	table.Close()

	want := []string{"lit", "colour", "flat"}
	if len(released) != len(want) {
		t.Fatalf("released %v, want %v", released, want)
	}
	for i := range want {
		if released[i] != want[i] {
			t.Errorf("released[%d] = %s, want %s", i, released[i], want[i])
		}
	}

	if _, err := table.GetOrLoad("flat", func() (string, error) { return "flat", nil }); !errors.Is(err, ErrClosed) {
		t.Errorf("GetOrLoad() after Close error = %v, want ErrClosed", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", table.Len())
	}
}
