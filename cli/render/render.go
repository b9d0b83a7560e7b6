// Package render provides output rendering for the wmiq CLI.
//
// Records come off a result cursor as ordered field/value maps; the
// renderer serializes them to the selected format:
//   - jsonl: one JSON object per record (default, pipe-friendly)
//   - yaml: one YAML document per record
//   - msgpack: length-prefixed msgpack stream, for feeding other tools
//
// The --format flag always overrides the default. Invalid formats are
// errors.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatJSONL   Format = "jsonl"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat parses a format string, returning an error for invalid
// formats. The empty string selects the default (jsonl).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "jsonl":
		return FormatJSONL, nil
	case "yaml":
		return FormatYAML, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("invalid format: %q (must be jsonl, yaml, or msgpack)", s)
	}
}

// Record is one rendered WMI record: field names mapped to their display
// values. Field order is carried separately since Go maps do not preserve
// it.
type Record struct {
	// Fields is the cursor's field-name order.
	Fields []string
	// Values maps field name to the permissively formatted value.
	Values map[string]string
}

// Renderer serializes records to a writer in a fixed format.
type Renderer struct {
	format Format
	out    io.Writer
}

// NewRenderer creates a renderer for the given format and writer.
func NewRenderer(format Format, out io.Writer) *Renderer {
	return &Renderer{format: format, out: out}
}

// Render writes one record in the renderer's format.
func (r *Renderer) Render(rec Record) error {
	switch r.format {
	case FormatJSONL:
		return r.renderJSONL(rec)
	case FormatYAML:
		return r.renderYAML(rec)
	case FormatMsgpack:
		return r.renderMsgpack(rec)
	default:
		return fmt.Errorf("invalid format: %q", r.format)
	}
}

// RenderAll writes a sequence of records.
func (r *Renderer) RenderAll(recs []Record) error {
	for _, rec := range recs {
		if err := r.Render(rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderJSONL(rec Record) error {
	data, err := json.Marshal(rec.Values)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

func (r *Renderer) renderYAML(rec Record) error {
	if _, err := fmt.Fprintln(r.out, "---"); err != nil {
		return err
	}
	// Emit in cursor field order rather than map order.
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range rec.Fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: rec.Values[name]},
		)
	}
	enc := yaml.NewEncoder(r.out)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) renderMsgpack(rec Record) error {
	return msgpack.NewEncoder(r.out).Encode(rec.Values)
}
