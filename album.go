package galleryremote

import (
	"errors"
	"fmt"
)

var (
	ErrAlbumNotInTree = errors.New("album does not belong to this tree")
	ErrAlbumOwnParent = errors.New("album cannot be its own parent")
	ErrAlbumCycle     = errors.New("album cannot be nested under its own descendant")
)

// AlbumRecord is one flat entry of a server album listing, before the
// parent/child structure is resolved. Parent references the parent album by
// name; empty means top level.
type AlbumRecord struct {
	Name           string
	Title          string
	Summary        string
	Parent         string
	CanAddItem     bool
	CanAddSubAlbum bool
}

// Album is one node of an AlbumTree. Name is the gallery's machine identifier
// for the album and is unique across the whole gallery; Title is the display
// name shown to people.
type Album struct {
	Name           string
	Title          string
	Summary        string
	CanAddItem     bool
	CanAddSubAlbum bool

	tree     *AlbumTree
	id       int
	parent   int // index into the tree arena, -1 for top level
	children []int
}

// AlbumTree is the hierarchical album model for one gallery. Nodes live in an
// arena and reference each other by index, so the parent/child links cannot
// form ownership cycles. GetAlbums replaces the client's tree wholesale; any
// previously handed-out Album pointers refer to the old snapshot.
type AlbumTree struct {
	albums []*Album
	roots  []int
}

// NewAlbumTree builds a tree from a flat ordered listing. Records whose parent
// reference cannot be resolved (directly or because their whole ancestor chain
// is unresolvable) are dropped rather than failing the build, since gallery
// servers have been seen returning partial listings, and returned so the
// caller can report them. Records duplicating an earlier record's name are
// dropped the same way.
func NewAlbumTree(records []AlbumRecord) (*AlbumTree, []AlbumRecord) {
	var dropped []AlbumRecord

	byName := make(map[string]int, len(records))
	kept := make([]AlbumRecord, 0, len(records))
	for _, rec := range records {
		if _, dup := byName[rec.Name]; dup {
			dropped = append(dropped, rec)
			continue
		}
		byName[rec.Name] = len(kept)
		kept = append(kept, rec)
	}

	// Resolve iteratively: a record is placeable once its parent is placed.
	// Whatever never becomes placeable is an orphan, either because its
	// parent is missing or because its ancestry loops.
	placed := make([]bool, len(kept))
	for {
		progress := false
		for i, rec := range kept {
			if placed[i] {
				continue
			}
			if rec.Parent == "" {
				placed[i] = true
				progress = true
				continue
			}
			if pi, ok := byName[rec.Parent]; ok && placed[pi] {
				placed[i] = true
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	tree := &AlbumTree{}
	arena := make(map[string]int, len(kept))
	for i, rec := range kept {
		if !placed[i] {
			dropped = append(dropped, rec)
			continue
		}
		album := &Album{
			Name:           rec.Name,
			Title:          rec.Title,
			Summary:        rec.Summary,
			CanAddItem:     rec.CanAddItem,
			CanAddSubAlbum: rec.CanAddSubAlbum,
			tree:           tree,
			id:             len(tree.albums),
			parent:         -1,
		}
		arena[rec.Name] = album.id
		tree.albums = append(tree.albums, album)
	}

	for _, album := range tree.albums {
		rec := kept[byName[album.Name]]
		if rec.Parent == "" {
			tree.roots = append(tree.roots, album.id)
			continue
		}
		parent := tree.albums[arena[rec.Parent]]
		album.parent = parent.id
		parent.children = append(parent.children, album.id)
	}

	return tree, dropped
}

// Albums returns every album in listing order.
func (t *AlbumTree) Albums() []*Album {
	out := make([]*Album, len(t.albums))
	copy(out, t.albums)
	return out
}

// Roots returns the top-level albums in listing order.
func (t *AlbumTree) Roots() []*Album {
	return t.resolve(t.roots)
}

// AlbumByName returns the album with the given machine name, or nil.
func (t *AlbumTree) AlbumByName(name string) *Album {
	for _, a := range t.albums {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// CanAddItemToAnyAlbum reports whether any album in the tree accepts items.
func (t *AlbumTree) CanAddItemToAnyAlbum() bool {
	for _, id := range t.roots {
		if t.albums[id].CanAddItemToAlbumOrSub() {
			return true
		}
	}
	return false
}

// AddChild makes child the last child of parent. Equivalent to
// SetParent(child, parent).
func (t *AlbumTree) AddChild(parent, child *Album) error {
	return t.SetParent(child, parent)
}

// SetParent moves child under parent (or to the top level when parent is
// nil), detaching it from any previous parent first. Self-parenting and moves
// that would create a cycle are rejected.
func (t *AlbumTree) SetParent(child, parent *Album) error {
	if child == nil || child.tree != t {
		return ErrAlbumNotInTree
	}
	if parent != nil {
		if parent.tree != t {
			return ErrAlbumNotInTree
		}
		if parent == child {
			return ErrAlbumOwnParent
		}
		for a := parent; a != nil; a = a.Parent() {
			if a == child {
				return fmt.Errorf("cannot move %q under %q: %w", child.Name, parent.Name, ErrAlbumCycle)
			}
		}
	}

	t.detach(child)
	if parent == nil {
		child.parent = -1
		t.roots = append(t.roots, child.id)
		return nil
	}
	child.parent = parent.id
	parent.children = append(parent.children, child.id)
	return nil
}

func (t *AlbumTree) detach(child *Album) {
	if child.parent == -1 {
		t.roots = removeID(t.roots, child.id)
	} else {
		old := t.albums[child.parent]
		old.children = removeID(old.children, child.id)
	}
	child.parent = -1
}

func removeID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (t *AlbumTree) resolve(ids []int) []*Album {
	out := make([]*Album, len(ids))
	for i, id := range ids {
		out[i] = t.albums[id]
	}
	return out
}

// Parent returns the album's parent, or nil for top-level albums.
func (a *Album) Parent() *Album {
	if a.parent == -1 {
		return nil
	}
	return a.tree.albums[a.parent]
}

// Children returns the album's sub-albums in order.
func (a *Album) Children() []*Album {
	return a.tree.resolve(a.children)
}

// Depth is the album's distance from the top level; top-level albums are 0.
func (a *Album) Depth() int {
	depth := 0
	for p := a.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}

// CanAddItemToAlbumOrSub reports whether this album or any album nested under
// it accepts new items.
func (a *Album) CanAddItemToAlbumOrSub() bool {
	if a.CanAddItem {
		return true
	}
	for _, c := range a.children {
		if a.tree.albums[c].CanAddItemToAlbumOrSub() {
			return true
		}
	}
	return false
}

// CanAddSubToAlbumOrSub reports whether this album or any album nested under
// it accepts new sub-albums.
func (a *Album) CanAddSubToAlbumOrSub() bool {
	if a.CanAddSubAlbum {
		return true
	}
	for _, c := range a.children {
		if a.tree.albums[c].CanAddSubToAlbumOrSub() {
			return true
		}
	}
	return false
}
