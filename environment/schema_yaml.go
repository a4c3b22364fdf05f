package environment

import (
	"fmt"

	"github.com/gqlengine/gql/types"
	"gopkg.in/yaml.v2"
)

// yamlSchema mirrors the on-disk config shape an embedder hands a
// provider: a list of tables, each a list of column name/type pairs.
type yamlSchema struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Name    string       `yaml:"name"`
	Columns []yamlColumn `yaml:"columns"`
}

type yamlColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// typeByName maps the config's lowercase type names to the fixed scalar
// Type instances; structural types aren't expressible in a schema file.
var typeByName = map[string]types.Type{
	"int":      types.Int,
	"float":    types.Float,
	"text":     types.Text,
	"bool":     types.Bool,
	"boolean":  types.Bool,
	"date":     types.Date,
	"time":     types.Time,
	"datetime": types.DateTime,
}

// LoadSchemaYAML parses a YAML document of the shape:
//
//	tables:
//	  - name: commits
//	    columns:
//	      - {name: hash, type: text}
//	      - {name: author_name, type: text}
//
// into a Schema. Column order in the file is preserved as the table's
// projection order.
func LoadSchemaYAML(data []byte) (*Schema, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema yaml: %w", err)
	}
	schema := NewSchema()
	for _, t := range doc.Tables {
		names := make([]string, 0, len(t.Columns))
		cols := map[string]types.Type{}
		for _, c := range t.Columns {
			typ, ok := typeByName[c.Type]
			if !ok {
				return nil, fmt.Errorf("table %q column %q: unknown type %q", t.Name, c.Name, c.Type)
			}
			names = append(names, c.Name)
			cols[c.Name] = typ
		}
		schema.AddTable(t.Name, names, cols)
	}
	return schema, nil
}
