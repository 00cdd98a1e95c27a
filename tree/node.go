// Package tree provides the hierarchy data collaborator consumed by the navigator
package tree

import "strings"

// Kind is the tagged variant of an entry
type Kind uint8

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "dir"
	case KindFile:
		return "file"
	}
	return "unknown"
}

// Entry is one child as reported by a Source
type Entry struct {
	Name string
	Kind Kind
}

// Node is a materialized child of the current level
// Immutable once created, owned by the level slice
type Node struct {
	Path       string
	Name       string
	Kind       Kind
	ParentPath string
}

// IsDir reports whether the node is a directory
func (n Node) IsDir() bool {
	return n.Kind == KindDirectory
}

// Source is the read-only hierarchy lookup
type Source interface {
	// ListChildren returns the ordered children of path, empty when absent or not a container
	ListChildren(path string) []Entry
	// ResolveEntry returns the kind of path, KindFile when unknown
	ResolveEntry(path string) Kind
}

// Root is the top of every hierarchy
const Root = "/"

// Join appends name to parent
func Join(parent, name string) string {
	if parent == Root || parent == "" {
		return Root + name
	}
	return parent + "/" + name
}

// Parent returns the parent path, Root for top-level entries and for Root itself
func Parent(path string) string {
	if path == Root || path == "" {
		return Root
	}
	idx := strings.LastIndexByte(path, '/')
	if idx <= 0 {
		return Root
	}
	return path[:idx]
}

// Clean normalizes a user supplied path: leading slash, no trailing slash, no empty segments
func Clean(path string) string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return Root
	}
	return Root + strings.Join(out, "/")
}

// Materialize lists the children of path and converts them to nodes, keeping at most limit entries
// limit <= 0 means no limit
func Materialize(src Source, path string, limit int) []Node {
	entries := src.ListChildren(path)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	nodes := make([]Node, 0, len(entries))
	for _, e := range entries {
		nodes = append(nodes, Node{
			Path:       Join(path, e.Name),
			Name:       e.Name,
			Kind:       e.Kind,
			ParentPath: path,
		})
	}
	return nodes
}

// ShortPath truncates path from the left to at most maxLen runes with a leading ellipsis
func ShortPath(path string, maxLen int) string {
	r := []rune(path)
	if maxLen <= 0 || len(r) <= maxLen {
		return path
	}
	return "…" + string(r[len(r)-maxLen+1:])
}
