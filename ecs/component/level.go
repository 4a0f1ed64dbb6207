package component

import "github.com/milk9111/ldtkdrop/asset"

// LevelRole classifies a Level record.
type LevelRole int

const (
	LevelNone LevelRole = iota
	LevelCurrent
)

func (r LevelRole) String() string {
	switch r {
	case LevelCurrent:
		return "current"
	default:
		return "none"
	}
}

// Level is a loaded (or loading) LDtk project. The tiles the project
// produces live on child entities carrying LevelLayer.
type Level struct {
	Handle *asset.Handle
	Role   LevelRole
}

var LevelComponent = NewComponent[Level]()

// LevelSpawned records which version of a Level's handle its children were
// built from.
type LevelSpawned struct {
	Version uint64
}

var LevelSpawnedComponent = NewComponent[LevelSpawned]()
