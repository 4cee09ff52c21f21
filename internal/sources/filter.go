package sources

// Filter narrows a source list. Zero values mean "no restriction".
// An unknown region, category, or country is not an error: it simply
// matches nothing and the run produces zero articles.
type Filter struct {
	Region     string
	Category   string
	Country    string
	MaxSources int
}

// Apply returns the sources that pass the filter, preserving order.
func (f Filter) Apply(in []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(in))
	for _, s := range in {
		if f.Region != "" && s.Region != f.Region {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.Country != "" && s.Country != f.Country {
			continue
		}
		out = append(out, s)
	}
	if f.MaxSources > 0 && len(out) > f.MaxSources {
		out = out[:f.MaxSources]
	}
	return out
}

// ByName looks up a built-in source by its unique name.
func ByName(name string) (Descriptor, bool) {
	for _, s := range builtin {
		if s.Name == name {
			return s, true
		}
	}
	return Descriptor{}, false
}
