package interpreter

import "github.com/coregx/gxpdf/internal/parser"

// markedContentState tracks BMC/BDC/EMC nesting and BX/EX compatibility
// sections. Neither affects geometry: marked content is metadata the
// content stream carries for tagging/accessibility/optional content,
// and compatibility sections exist only to let a producer bracket
// operators a reader might not understand. This interpreter skips any
// operator outside its own operator table whether or not a BX/EX
// section is open, so BX/EX's only effect here is to silence the debug
// log entry such a skipped operator otherwise produces.
type markedContentState struct {
	mcDepth     int
	compatDepth int

	// hiddenStack has one entry per open BMC/BDC section, recording
	// whether that section's own properties resolved to hidden. hidden()
	// reports true whenever any entry is true, and end() pops exactly the
	// entry begin() pushed so an EMC closing a non-hiding section never
	// disturbs a hiding one still open above it.
	hiddenStack []bool
}

// begin handles BMC (tag only) and BDC (tag + properties).
// properties may be an inline dictionary or a name looked up in the
// page's /Properties resource subdictionary. The only visibility signal
// honored is the property dictionary's own /Usage /Print /PrintState
// false, which marks the section hidden unless includeHidden is set;
// the optional-content config dictionary's /ON and /OFF arrays are not
// consulted.
func (m *markedContentState) begin(reader *parser.Reader, propResources *parser.Dictionary, properties parser.PdfObject, includeHidden bool) {
	m.mcDepth++

	hidden := false
	if properties != nil {
		resolved := properties
		if name, ok := properties.(*parser.Name); ok && propResources != nil {
			resolved = reader.Resolve(propResources.Get(name.Value()))
		} else {
			resolved = reader.Resolve(properties)
		}
		if dict, ok := resolved.(*parser.Dictionary); ok {
			if usage, ok := reader.Resolve(dict.Get("Usage")).(*parser.Dictionary); ok {
				if printDict, ok := reader.Resolve(usage.Get("Print")).(*parser.Dictionary); ok {
					if b, ok := printDict.Get("PrintState").(*parser.Boolean); ok && !b.Value() {
						hidden = true
					}
				}
			}
		}
	}
	m.hiddenStack = append(m.hiddenStack, hidden && !includeHidden)
}

// end handles EMC: pop one level of marked-content nesting, unwinding a
// hidden-section marker if this was the section that set it.
func (m *markedContentState) end() {
	if m.mcDepth > 0 {
		m.mcDepth--
	}
	if len(m.hiddenStack) > 0 {
		m.hiddenStack = m.hiddenStack[:len(m.hiddenStack)-1]
	}
}

// hidden reports whether drawing should be suppressed because of an
// enclosing hidden optional-content section.
func (m *markedContentState) hidden() bool {
	for _, h := range m.hiddenStack {
		if h {
			return true
		}
	}
	return false
}

// beginCompat handles BX: enter a compatibility section.
func (m *markedContentState) beginCompat() {
	m.compatDepth++
}

// endCompat handles EX: leave a compatibility section.
func (m *markedContentState) endCompat() {
	if m.compatDepth > 0 {
		m.compatDepth--
	}
}

// inCompat reports whether a BX/EX section is open, in which case an
// unrecognized operator is skipped without a debug log entry.
func (m *markedContentState) inCompat() bool {
	return m.compatDepth > 0
}
