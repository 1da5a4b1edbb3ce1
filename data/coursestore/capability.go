package coursestore

import (
	"errors"

	"github.com/google/uuid"
)

// capability tokens replace the ambient elevated session the old tooling
// relied on: every store call has to present one and writes need manage
// rights

var ErrNotPermitted = errors.New("capability does not permit managing courses")

type Capability struct {
	token     uuid.UUID
	canManage bool
}

// ReadCapability can fetch and reload courses but never write them
func ReadCapability() Capability {
	return Capability{token: uuid.New()}
}

// ManageCapability can also persist courses and recompute derived dates
func ManageCapability() Capability {
	return Capability{token: uuid.New(), canManage: true}
}

func (c Capability) Token() uuid.UUID {
	return c.token
}

func (c Capability) CanManage() bool {
	return c.canManage
}
