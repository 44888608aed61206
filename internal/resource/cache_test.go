package resource

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCacheLoadsOnce(t *testing.T) {
	var loads atomic.Int32
	c := NewCache("clip", func(key string) (string, error) {
		loads.Add(1)
		return "data:" + key, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get("door")
			if err != nil || v != "data:door" {
				t.Errorf("Get = %q, %v", v, err)
			}
		}()
	}
	wg.Wait()

	if loads.Load() != 1 {
		t.Errorf("loads = %d, want 1", loads.Load())
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	fail := true
	c := NewCache("clip", func(key string) (int, error) {
		if fail {
			return 0, errors.New("missing")
		}
		return 7, nil
	})

	if _, err := c.Get("x"); err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 0 {
		t.Errorf("failed load was cached")
	}

	fail = false
	if v, err := c.Get("x"); err != nil || v != 7 {
		t.Errorf("Get after fix = %d, %v", v, err)
	}
}

func TestCacheClear(t *testing.T) {
	var loads int
	c := NewCache("clip", func(key string) (int, error) {
		loads++
		return loads, nil
	})
	first, _ := c.Get("a")
	c.Clear()
	second, _ := c.Get("a")
	if first == second {
		t.Errorf("Clear did not drop the entry")
	}
}
