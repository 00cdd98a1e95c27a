package tree

import "sync"

type memEntry struct {
	kind     Kind
	children []string
}

// MemFS is an in-memory Source keyed by absolute path
// Children declared without their own entry resolve as files
type MemFS struct {
	mu      sync.RWMutex
	entries map[string]*memEntry
}

// NewMemFS creates an empty tree containing only the root directory
func NewMemFS() *MemFS {
	return &MemFS{
		entries: map[string]*memEntry{
			Root: {kind: KindDirectory},
		},
	}
}

// AddDir declares a directory with ordered child names, creating missing parents
func (m *MemFS) AddDir(path string, children ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = Clean(path)
	m.ensureParents(path)
	e, ok := m.entries[path]
	if !ok {
		e = &memEntry{}
		m.entries[path] = e
	}
	e.kind = KindDirectory
	for _, c := range children {
		m.appendChild(e, c)
	}
}

// AddFile declares a file, creating missing parents
func (m *MemFS) AddFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = Clean(path)
	if path == Root {
		return
	}
	m.ensureParents(path)
	if _, ok := m.entries[path]; !ok {
		m.entries[path] = &memEntry{kind: KindFile}
	}
}

// ensureParents links path into each ancestor, caller holds the lock
func (m *MemFS) ensureParents(path string) {
	for path != Root {
		parent := Parent(path)
		pe, ok := m.entries[parent]
		if !ok {
			pe = &memEntry{kind: KindDirectory}
			m.entries[parent] = pe
		}
		pe.kind = KindDirectory
		m.appendChild(pe, path[len(Join(parent, "")):])
		path = parent
	}
}

func (m *MemFS) appendChild(e *memEntry, name string) {
	for _, c := range e.children {
		if c == name {
			return
		}
	}
	e.children = append(e.children, name)
}

// ListChildren implements Source
func (m *MemFS) ListChildren(path string) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[path]
	if !ok || e.kind != KindDirectory {
		return nil
	}

	out := make([]Entry, 0, len(e.children))
	for _, name := range e.children {
		kind := KindFile
		if ce, ok := m.entries[Join(path, name)]; ok {
			kind = ce.kind
		}
		out = append(out, Entry{Name: name, Kind: kind})
	}
	return out
}

// ResolveEntry implements Source
func (m *MemFS) ResolveEntry(path string) Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, ok := m.entries[path]; ok {
		return e.kind
	}
	return KindFile
}

// Len returns the number of known entries including the root
func (m *MemFS) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Demo returns the built-in demonstration tree
func Demo() *MemFS {
	m := NewMemFS()
	m.AddDir("/", "home", "usr", "etc", "var", "tmp", "opt", "bin", "lib")
	m.AddDir("/home", "user", "guest", "admin")
	m.AddDir("/home/user", "Documents", "Downloads", "Pictures", "Videos", "Music", "Desktop", "config.txt", "notes.md", "data.json")
	m.AddDir("/home/user/Documents", "report.pdf", "presentation.pptx", "notes.txt", "project")
	m.AddDir("/home/user/Downloads", "file1.zip", "file2.tar.gz", "image.png", "video.mp4")
	m.AddDir("/usr", "bin", "lib", "share", "local")
	m.AddDir("/etc", "config", "hosts", "passwd", "group")
	return m
}
