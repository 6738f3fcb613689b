package redpacket

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitfsorg/redpacket-go/config"
)

// DBFileName is the packet database file inside the data directory.
const DBFileName = "redpacket.db"

// OpenStore constructs the Store described by cfg. With the "bolt" backend
// the returned Store is a *BoltStore and the caller owns closing it.
func OpenStore(cfg config.Config) (Store, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Backend) {
	case "mem":
		return NewMemStore(), nil
	case "bolt":
		return OpenBoltStore(filepath.Join(cfg.DataDir, DBFileName))
	default:
		// ValidateConfig already rejects anything else.
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Backend)
	}
}
