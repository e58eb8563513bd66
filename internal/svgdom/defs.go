package svgdom

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DefsPool deduplicates reusable resource elements (gradients, clip
// paths, patterns) by content hash, the same stable-identity idea the
// teacher's writer/catalog.go uses for indirect object numbers, just
// keyed by a content digest instead of first-seen order.
type DefsPool struct {
	root    *Element // the <defs> element itself
	seen    map[string]string
	counter int
}

// NewDefsPool creates an empty <defs> container.
func NewDefsPool() *DefsPool {
	return &DefsPool{
		root: NewElement("defs"),
		seen: make(map[string]string),
	}
}

// Root returns the <defs> element, for embedding in the document tree.
func (p *DefsPool) Root() *Element {
	return p.root
}

// Intern registers el under a generated id of the form prefix+N,
// reusing an existing entry when an element with identical content
// (ignoring its own id attribute) was already interned. Returns the id
// to reference via url(#id) or xlink:href="#id".
func (p *DefsPool) Intern(prefix string, el *Element) string {
	el.SetAttr("id", "")
	var buf bytes.Buffer
	_ = writeElement(&buf, el)
	sum := sha256.Sum256(buf.Bytes())
	digest := hex.EncodeToString(sum[:])

	if id, ok := p.seen[digest]; ok {
		return id
	}

	p.counter++
	id := fmt.Sprintf("%s%d", prefix, p.counter)
	el.SetAttr("id", id)
	p.root.AppendChild(el)
	p.seen[digest] = id
	return id
}

// Len reports how many distinct resources have been interned.
func (p *DefsPool) Len() int {
	return len(p.root.Children)
}
