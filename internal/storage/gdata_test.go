package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestGdata(t *testing.T) *GdataBackend {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	appName := fmt.Sprintf("hoops_test_%d", time.Now().UnixNano())
	g, err := OpenGdata(appName)
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(filepath.Join(home, ".local", "share", appName))
	})
	return g
}

func TestGdataRoundTrip(t *testing.T) {
	g := openTestGdata(t)

	if _, ok, err := g.Get("alice:level"); err != nil || ok {
		t.Fatalf("Get() on fresh storage = ok:%v err:%v", ok, err)
	}
	if err := g.Set("alice:level", "5"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := g.Set("level", "2"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	v, ok, err := g.Get("alice:level")
	if err != nil || !ok || v != "5" {
		t.Errorf("Get(alice:level) = %q, %v, %v", v, ok, err)
	}
	v, ok, err = g.Get("level")
	if err != nil || !ok || v != "2" {
		t.Errorf("Get(level) = %q, %v, %v", v, ok, err)
	}

	if err := g.Delete("alice:level"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := g.Get("alice:level"); ok {
		t.Error("Value still present after Delete")
	}
	if err := g.Delete("alice:level"); err != nil {
		t.Errorf("Deleting a missing key should succeed: %v", err)
	}
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key, object, prop string
	}{
		{"level", "progress", "level"},
		{"alice:maxLevel", "profile_alice", "max_4cevel"},
		{"bob smith:numberOfShots", "profile_bob_20smith", "number_4ff_53hots"},
		{"../etc:level", "profile__2e_2e_2fetc", "level"},
		{"a:b:level", "profile_a_3ab", "level"},
	}

	for _, tt := range tests {
		obj, prop := splitKey(tt.key)
		if obj != tt.object || prop != tt.prop {
			t.Errorf("splitKey(%q) = %q, %q; want %q, %q", tt.key, obj, prop, tt.object, tt.prop)
		}
	}
}

func TestSplitKeyKeepsProfilesApart(t *testing.T) {
	profiles := []string{"bob.smith", "bob_smith", "bob smith", "Bob_smith", "bob_2esmith", "bob"}
	seen := make(map[string]string)
	for _, p := range profiles {
		obj, _ := splitKey(p + ":level")
		if prev, ok := seen[obj]; ok {
			t.Errorf("profiles %q and %q share object %q", prev, p, obj)
		}
		seen[obj] = p
	}
}

func TestGdataProfilesDoNotCollide(t *testing.T) {
	g := openTestGdata(t)

	if err := g.Set("bob.smith:level", "7"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, ok, err := g.Get("bob_smith:level"); err != nil || ok {
		t.Errorf("bob_smith sees bob.smith's level: ok=%v err=%v", ok, err)
	}
}
