package state

// ResourceKind identifies a stealable or droppable resource type.
type ResourceKind string

const (
	ResourceGold  ResourceKind = "gold"
	ResourceWood  ResourceKind = "wood"
	ResourceStone ResourceKind = "stone"
	ResourceFood  ResourceKind = "food"
)

// CarriedResource is a parcel held by an entity. Carrying capacity is one
// parcel; a second pickup is rejected until the current one is dropped or
// delivered.
type CarriedResource struct {
	Kind   ResourceKind
	Amount int
}

// KnownResourceKind reports whether kind is one of the recognised kinds.
func KnownResourceKind(kind ResourceKind) bool {
	switch kind {
	case ResourceGold, ResourceWood, ResourceStone, ResourceFood:
		return true
	default:
		return false
	}
}
