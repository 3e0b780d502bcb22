package storage

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-hoops/internal/progress"
)

// Progression backend kinds accepted by OpenBackend.
const (
	BackendSQLite = "sqlite"
	BackendGdata  = "gdata"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned for an unsupported backend kind.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// OpenBackend returns the progression backend of the given kind.
// The sqlite kind shares db; gdata stores under appName.
func OpenBackend(kind string, db *Store, appName string) (progress.Backend, error) {
	switch kind {
	case BackendSQLite, "":
		if db == nil {
			return nil, errors.New("storage: sqlite backend needs an open database")
		}
		return db, nil
	case BackendGdata:
		return OpenGdata(appName)
	case BackendMemory:
		return progress.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, kind)
	}
}
