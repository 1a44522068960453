package export

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/Faultbox/sceneexport/internal/scene"
)

// IDProvider derives the document id of a node. Ids must be unique within
// one export and must never equal NavMeshID.
type IDProvider interface {
	ID(h scene.Handle) string
}

// IDFunc adapts a function to IDProvider.
type IDFunc func(h scene.Handle) string

// ID implements IDProvider.
func (f IDFunc) ID(h scene.Handle) string {
	return f(h)
}

// HandleIDs uses the decimal form of the runtime handle. Ids are only
// meaningful within the export that produced them.
type HandleIDs struct{}

// ID implements IDProvider.
func (HandleIDs) ID(h scene.Handle) string {
	return strconv.FormatInt(int64(h), 10)
}

// UUIDs derives name-based (SHA-1) UUIDs from a scope and the handle, so
// two exports of the same scene in the same scope agree on ids.
type UUIDs struct {
	ns uuid.UUID
}

// NewUUIDs creates a provider whose namespace is derived from scope,
// usually the map name.
func NewUUIDs(scope string) UUIDs {
	return UUIDs{ns: uuid.NewSHA1(uuid.NameSpaceURL, []byte("sceneexport:"+scope))}
}

// ID implements IDProvider.
func (u UUIDs) ID(h scene.Handle) string {
	return uuid.NewSHA1(u.ns, []byte(strconv.FormatInt(int64(h), 10))).String()
}
