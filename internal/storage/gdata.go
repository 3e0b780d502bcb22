package storage

import (
	"fmt"
	"strings"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// defaultObject holds progression written without a profile prefix.
const defaultObject = "progress"

// GdataBackend stores progression through gdata, which picks the
// platform's user data directory. Profile-prefixed keys ("alice:level")
// become one gdata object per profile. Safe for concurrent use, since
// SSH sessions share one backend.
type GdataBackend struct {
	mu sync.Mutex
	m  *gdata.Manager
}

// OpenGdata opens the gdata storage of the named application.
func OpenGdata(appName string) (*GdataBackend, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata for %s: %w", appName, err)
	}
	return &GdataBackend{m: m}, nil
}

func (g *GdataBackend) Get(key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	obj, prop := splitKey(key)
	if !g.m.ObjectPropExists(obj, prop) {
		return "", false, nil
	}
	data, err := g.m.LoadObjectProp(obj, prop)
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot load %s: %w", key, err)
	}
	return string(data), true, nil
}

func (g *GdataBackend) Set(key, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	obj, prop := splitKey(key)
	if err := g.m.SaveObjectProp(obj, prop, []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

func (g *GdataBackend) Delete(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	obj, prop := splitKey(key)
	if !g.m.ObjectPropExists(obj, prop) {
		return nil
	}
	if err := g.m.DeleteObjectProp(obj, prop); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}

// splitKey maps "profile:key" to a per-profile object. Keys never contain
// ':', so the profile is everything before the last one.
func splitKey(key string) (object, prop string) {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return defaultObject, escape(key)
	}
	return "profile_" + escape(key[:i]), escape(key[i+1:])
}

// escape makes s safe as a file name on every platform, including
// case-insensitive ones. Lowercase letters, digits and '-' are kept; any
// other byte becomes '_' and two hex digits, so distinct names never meet.
func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02x", c)
		}
	}
	return b.String()
}
