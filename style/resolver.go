package style

import (
	"github.com/dasdy/nuhxboard/model"
)

type Option func(*Resolver)

// WithStateFontSize reads the font size from the selected state instead of the loose one.
func WithStateFontSize() Option {
	return func(r *Resolver) {
		r.sizeFromState = true
	}
}

// Resolver answers style lookups for a single style document.
// It only reads the document, so it is safe for concurrent use.
type Resolver struct {
	doc           *model.Style
	overrides     map[model.ElementID]*model.KeyStyle
	sizeFromState bool
}

func NewResolver(doc *model.Style, opts ...Option) *Resolver {
	r := &Resolver{
		doc:       doc,
		overrides: make(map[model.ElementID]*model.KeyStyle, len(doc.ElementStyles)),
	}

	for i := range doc.ElementStyles {
		key := doc.ElementStyles[i].Key
		// first entry wins, matching Lookup
		if _, ok := r.overrides[key]; ok {
			continue
		}

		r.overrides[key] = &doc.ElementStyles[i].Value
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Resolver) Style() *model.Style {
	return r.doc
}

func (r *Resolver) KeyStyle(id model.ElementID) *model.KeyStyle {
	if s, ok := r.overrides[id]; ok {
		return s
	}

	return &r.doc.DefaultKeyStyle
}

func (r *Resolver) Resolve(id model.ElementID, pressed bool) Paint {
	return paintFor(r.KeyStyle(id), pressed, r.sizeFromState)
}
