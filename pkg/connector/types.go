package connector

// Category is one of the fixed connector definition folders.
type Category string

const (
	CategoryActions  Category = "actions"
	CategoryAuth     Category = "auth"
	CategoryEvents   Category = "events"
	CategoryMetadata Category = "metadata"
	CategoryMeta     Category = "meta"
)

// Categories lists every category in traversal order. Reconciliation and
// reporting both iterate in this order so output is reproducible.
var Categories = []Category{
	CategoryActions,
	CategoryAuth,
	CategoryEvents,
	CategoryMetadata,
	CategoryMeta,
}

// IsValid reports whether c belongs to the fixed category set.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
