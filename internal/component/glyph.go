package component

// Glyph is how the render system draws an entity. Text may be an emoji.
type Glyph struct {
	Text  string
	Color string // tcell color name, e.g. "yellow"
	Order int    // higher draws on top
}
