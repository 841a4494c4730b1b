package tileset3d

import "errors"

// Sentinel errors returned by constructors. Callers should use errors.Is,
// not string comparison, against these.
var (
	// ErrNilRoot is returned by NewTileset when the supplied root tile is nil.
	ErrNilRoot = errors.New("tileset3d: root tile is nil")
	// ErrInvalidBudget is returned by NewTileset when MaximumScreenSpaceError
	// is not a positive, finite value.
	ErrInvalidBudget = errors.New("tileset3d: maximum screen space error must be positive")
	// ErrNilQueries is returned by NewTileset when no TileQueries implementation is supplied.
	ErrNilQueries = errors.New("tileset3d: queries is nil")
)
