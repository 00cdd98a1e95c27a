package tree

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a tree description loaded from YAML
//
//	start: /home/user
//	children:
//	  - name: home
//	    children:
//	      - user/
//	      - notes.txt
//
// Scalar children are files unless they end with '/'. Mapping children with a
// children key, or dir: true, are directories.
type Document struct {
	Start    string    `yaml:"start"`
	Children []DocNode `yaml:"children"`
}

// DocNode is one entry of a Document
type DocNode struct {
	Name     string    `yaml:"name"`
	Dir      bool      `yaml:"dir"`
	Children []DocNode `yaml:"children"`
}

// UnmarshalYAML accepts either a bare name or a mapping
func (d *DocNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		name := value.Value
		d.Dir = strings.HasSuffix(name, "/")
		d.Name = strings.TrimSuffix(name, "/")
		return nil
	}

	type plain DocNode
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*d = DocNode(p)
	if d.Children != nil {
		d.Dir = true
	}
	if strings.HasSuffix(d.Name, "/") {
		d.Dir = true
		d.Name = strings.TrimSuffix(d.Name, "/")
	}
	return nil
}

// DecodeDocument parses a YAML tree document
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode tree document: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads a YAML tree document from disk
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tree document: %w", err)
	}
	defer f.Close()
	return DecodeDocument(f)
}

// Build converts the document into a MemFS
func (d *Document) Build() (*MemFS, error) {
	m := NewMemFS()
	if err := addDocChildren(m, Root, d.Children); err != nil {
		return nil, err
	}
	return m, nil
}

func addDocChildren(m *MemFS, parent string, children []DocNode) error {
	names := make([]string, 0, len(children))
	for _, c := range children {
		if c.Name == "" || strings.Contains(c.Name, "/") {
			return fmt.Errorf("invalid entry name %q under %s", c.Name, parent)
		}
		names = append(names, c.Name)
	}
	m.AddDir(parent, names...)

	for _, c := range children {
		p := Join(parent, c.Name)
		if !c.Dir {
			m.AddFile(p)
			continue
		}
		if err := addDocChildren(m, p, c.Children); err != nil {
			return err
		}
	}
	return nil
}
