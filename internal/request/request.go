// Package request decodes evaluation request files.
//
// A request file is YAML or JSON (JSON being a subset of YAML, one decoder
// serves both) with optional metrics, composite and candidates sections.
package request

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dotcommander/pwgrade/internal/metrics"
	"github.com/dotcommander/pwgrade/internal/ranking"
	"github.com/dotcommander/pwgrade/internal/report"
	"gopkg.in/yaml.v3"
)

// Composite is the composite section of a request file.
type Composite struct {
	HitRate    float64 `yaml:"hit_rate"`
	RepeatRate float64 `yaml:"repeat_rate"`
}

// Candidate is one entry of the candidates section.
type Candidate struct {
	Name            string  `yaml:"name"`
	LengthDistance  float64 `yaml:"length_distance"`
	PatternDistance float64 `yaml:"pattern_distance"`
}

// File is a decoded request file.
type File struct {
	Name       string             `yaml:"name"`
	Metrics    map[string]float64 `yaml:"metrics"`
	Composite  *Composite         `yaml:"composite"`
	Candidates []Candidate        `yaml:"candidates"`
}

// Document holds both the generic and the typed view of a request file.
// Data feeds schema validation; File feeds the engine.
type Document struct {
	Path string
	Data map[string]any
	File File
	root yaml.Node
}

// Parse decodes request content. path is only used for error messages and
// may be empty.
func Parse(path string, content []byte) (*Document, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parsing request %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("request %s is empty", path)
	}

	var f File
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("decoding request %s: %w", path, err)
	}

	doc := &Document{Path: path, Data: data, File: f}
	if err := yaml.Unmarshal(content, &doc.root); err != nil {
		return nil, fmt.Errorf("parsing request %s: %w", path, err)
	}
	return doc, nil
}

// Line returns the 1-based line of the field at a dotted path such as
// "candidates.0.length_distance". When the full path does not exist the line
// of its deepest existing ancestor is returned, and 0 when nothing matches.
func (d *Document) Line(path string) int {
	if len(d.root.Content) == 0 || path == "" {
		return 0
	}
	node := d.root.Content[0]
	line := 0
	for _, seg := range strings.Split(path, ".") {
		next, at := child(node, seg)
		if next == nil {
			break
		}
		node, line = next, at
	}
	return line
}

// child finds seg below node, returning the child and the line it starts on.
func child(node *yaml.Node, seg string) (*yaml.Node, int) {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if key := node.Content[i]; key.Value == seg {
				return node.Content[i+1], key.Line
			}
		}
	case yaml.SequenceNode:
		i, err := strconv.Atoi(seg)
		if err == nil && i >= 0 && i < len(node.Content) {
			return node.Content[i], node.Content[i].Line
		}
	}
	return nil, 0
}

// ParseFile reads and decodes the request file at path.
func ParseFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}
	return Parse(path, content)
}

// ToRequest converts the file into an engine request. Metrics are ordered by
// name; a present but empty candidates list stays non-nil.
func (f File) ToRequest(source string) report.Request {
	req := report.Request{
		Name:   f.Name,
		Source: source,
	}

	names := make([]string, 0, len(f.Metrics))
	for name := range f.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		req.Metrics = append(req.Metrics, metrics.Sample{Name: name, Value: f.Metrics[name]})
	}

	if f.Composite != nil {
		req.Composite = &report.CompositeInput{
			HitRate:    f.Composite.HitRate,
			RepeatRate: f.Composite.RepeatRate,
		}
	}

	if f.Candidates != nil {
		req.Candidates = make([]ranking.Candidate, 0, len(f.Candidates))
		for _, c := range f.Candidates {
			req.Candidates = append(req.Candidates, ranking.Candidate{
				Name:            c.Name,
				LengthDistance:  c.LengthDistance,
				PatternDistance: c.PatternDistance,
			})
		}
	}

	return req
}
