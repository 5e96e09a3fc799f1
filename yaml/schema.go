// Package yaml loads record schemas from YAML documents.
package yaml

import (
	"errors"
	"io"

	"github.com/lmmx/bisque"
	"gopkg.in/yaml.v3"
)

// fileRecord mirrors bisque.Record for YAML decoding. Field order in the
// output record follows the order written in the document.
type fileRecord struct {
	Name   string      `yaml:"name"`
	Fields []fileField `yaml:"fields"`
}

type fileField struct {
	Name     string      `yaml:"name"`
	Selector string      `yaml:"selector"`
	Mode     string      `yaml:"mode"`
	Type     string      `yaml:"type"`
	Attr     string      `yaml:"attr"`
	Default  any         `yaml:"default"`
	Record   *fileRecord `yaml:"record"`
}

// LoadRecord decodes a YAML schema document into a validated bisque.Record.
// Mode defaults to "one" and type to "string" when omitted. Unknown keys
// are rejected so schema typos fail loudly.
func LoadRecord(r io.Reader) (*bisque.Record, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fr fileRecord
	if err := dec.Decode(&fr); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, bisque.Errorf(bisque.EINVALID, "empty schema document")
		}
		return nil, bisque.Errorf(bisque.EINVALID, "failed to parse schema: %v", err)
	}

	rec := convertRecord(&fr)
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func convertRecord(fr *fileRecord) *bisque.Record {
	rec := &bisque.Record{Name: fr.Name, Fields: make([]bisque.Field, 0, len(fr.Fields))}
	for _, ff := range fr.Fields {
		f := bisque.Field{
			Name:     ff.Name,
			Selector: ff.Selector,
			Mode:     bisque.Mode(ff.Mode),
			Type:     bisque.FieldType(ff.Type),
			Attr:     ff.Attr,
			Default:  ff.Default,
		}
		if f.Mode == "" {
			f.Mode = bisque.ModeOne
		}
		if ff.Record != nil {
			f.Record = convertRecord(ff.Record)
			f.Type = ""
		} else if f.Type == "" {
			f.Type = bisque.TypeString
		}
		rec.Fields = append(rec.Fields, f)
	}
	return rec
}
