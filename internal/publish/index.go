package publish

const (
	KeyMain     = "main"
	KeyOverview = "overview"
	KeyAPI      = "api"
)

// ModuleKey is the PageIndex key of a module section.
func ModuleKey(name string) string {
	return "module_" + name
}

// PageIndex maps logical section keys to remote page identifiers. Entries
// are write-once and keys keep their insertion order.
type PageIndex struct {
	keys []string
	ids  map[string]string
}

func NewPageIndex() *PageIndex {
	return &PageIndex{ids: make(map[string]string)}
}

// Set records id under key. It returns false, leaving the existing entry in
// place, when key is already present.
func (x *PageIndex) Set(key, id string) bool {
	if _, ok := x.ids[key]; ok {
		return false
	}
	x.ids[key] = id
	x.keys = append(x.keys, key)
	return true
}

func (x *PageIndex) Get(key string) (string, bool) {
	id, ok := x.ids[key]
	return id, ok
}

// Keys returns the keys in the order they were recorded.
func (x *PageIndex) Keys() []string {
	out := make([]string, len(x.keys))
	copy(out, x.keys)
	return out
}

func (x *PageIndex) Len() int {
	return len(x.keys)
}

// Map returns a copy of the index as a plain map.
func (x *PageIndex) Map() map[string]string {
	out := make(map[string]string, len(x.ids))
	for k, v := range x.ids {
		out[k] = v
	}
	return out
}
