package model

// ResourceType enumerates the Android resource kinds tracked for the
// unused-resource detector.
type ResourceType string

const (
	ResString  ResourceType = "string"
	ResColor   ResourceType = "color"
	ResDimen   ResourceType = "dimen"
	ResStyle   ResourceType = "style"
	ResAttr    ResourceType = "attr"
	ResDrawable ResourceType = "drawable"
	ResLayout  ResourceType = "layout"
	ResID      ResourceType = "id"
)

// Resource is an Android resource entity declared by a named element in
// res/values/*.xml. Layout and drawable files and `@+id` tags do not create
// Resources.
type Resource struct {
	Type     ResourceType
	Name     string
	File     string
	Line     int
}

// DeclarationID returns the stable Declaration identity used to track a
// resource through the registry and graph, keyed by (type, name) since two
// resources of different types may share a simple name (e.g. R.string.title
// and R.id.title).
func (r Resource) DeclarationID() ID {
	return ID{FQName: string(r.Type) + "/" + r.Name, Kind: KindResource, Disambiguator: string(r.Type)}
}
