package inmemory

import (
	"sync"

	"github.com/smzarrabimmp/cms"
)

type settingName struct {
	namespace string
	key       string
}

type Store struct {
	rw sync.RWMutex

	groups  map[int64]cms.Group
	handles map[string]int64

	memberships map[int64][]int64

	settings map[settingName]cms.Setting

	nextGroupID int64
}

func NewStore() *Store {
	return &Store{
		groups:      make(map[int64]cms.Group),
		handles:     make(map[string]int64),
		memberships: make(map[int64][]int64),
		settings:    make(map[settingName]cms.Setting),
		nextGroupID: 1,
	}
}
