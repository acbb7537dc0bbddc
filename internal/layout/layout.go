package layout

import (
	"errors"
	"fmt"
)

// Geometry positions a container on the glasses display, in display pixels.
type Geometry struct {
	X            int
	Y            int
	Width        int
	Height       int
	BorderWidth  int
	BorderColor  int
	BorderRadius int
	Padding      int
}

// ItemList describes the entries of a list container.
type ItemList struct {
	Names        []string
	Count        int
	Width        int // 0 fills the container
	SelectBorder bool
}

// ListContainer is a selectable list region.
type ListContainer struct {
	Geometry
	ID            int
	Name          string
	Items         ItemList
	CaptureEvents bool
}

// TextContainer is a text panel region.
type TextContainer struct {
	Geometry
	ID            int
	Name          string
	Content       string
	CaptureEvents bool
}

// Page is the start-up page description handed to the bridge in one call.
// Values built through NewPage satisfy the container count invariant.
type Page struct {
	total int
	lists []ListContainer
	texts []TextContainer
}

var (
	ErrContainerCount = errors.New("container total does not match declared containers")
	ErrDuplicateID    = errors.New("duplicate container id")
	ErrItemCount      = errors.New("item count does not match item names")
	ErrCaptureCount   = errors.New("more than one container captures events")
)

// NewPage validates and assembles a page.
func NewPage(total int, lists []ListContainer, texts []TextContainer) (Page, error) {
	if total != len(lists)+len(texts) {
		return Page{}, fmt.Errorf("%w: total %d, declared %d", ErrContainerCount, total, len(lists)+len(texts))
	}
	seen := make(map[int]string, total)
	captures := 0
	claim := func(id int, name string, capture bool) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: %d used by %q and %q", ErrDuplicateID, id, prev, name)
		}
		seen[id] = name
		if capture {
			captures++
		}
		return nil
	}
	for _, l := range lists {
		if err := claim(l.ID, l.Name, l.CaptureEvents); err != nil {
			return Page{}, err
		}
		if l.Items.Count != len(l.Items.Names) {
			return Page{}, fmt.Errorf("%w: %q declares %d, has %d", ErrItemCount, l.Name, l.Items.Count, len(l.Items.Names))
		}
	}
	for _, t := range texts {
		if err := claim(t.ID, t.Name, t.CaptureEvents); err != nil {
			return Page{}, err
		}
	}
	if captures > 1 {
		return Page{}, fmt.Errorf("%w: %d", ErrCaptureCount, captures)
	}
	return Page{total: total, lists: cloneLists(lists), texts: cloneTexts(texts)}, nil
}

// MustPage is NewPage for layouts fixed at build time.
func MustPage(total int, lists []ListContainer, texts []TextContainer) Page {
	p, err := NewPage(total, lists, texts)
	if err != nil {
		panic(err)
	}
	return p
}

// ContainerTotalNum returns the declared container count.
func (p Page) ContainerTotalNum() int {
	return p.total
}

// ListContainers returns a copy of the list containers.
func (p Page) ListContainers() []ListContainer {
	return cloneLists(p.lists)
}

// TextContainers returns a copy of the text containers.
func (p Page) TextContainers() []TextContainer {
	return cloneTexts(p.texts)
}

// Text looks up a text container by id and name.
func (p Page) Text(id int, name string) (TextContainer, bool) {
	for _, t := range p.texts {
		if t.ID == id && t.Name == name {
			return t, true
		}
	}
	return TextContainer{}, false
}

func cloneLists(lists []ListContainer) []ListContainer {
	if len(lists) == 0 {
		return nil
	}
	dup := make([]ListContainer, len(lists))
	copy(dup, lists)
	for i := range dup {
		dup[i].Items.Names = append([]string(nil), lists[i].Items.Names...)
	}
	return dup
}

func cloneTexts(texts []TextContainer) []TextContainer {
	if len(texts) == 0 {
		return nil
	}
	dup := make([]TextContainer, len(texts))
	copy(dup, texts)
	return dup
}
