package parameterservice

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

// ExportFormats are the formats accepted by Export.
var ExportFormats = []string{"json", "yaml", "toml"}

// Export renders the store as a nested document keyed by Key.Path, e.g.
//
//	offsets:
//	  task:
//	    bsd_info: 872
func Export(s *Store, format string) ([]byte, error) {
	var parser koanf.Parser
	switch strings.ToLower(format) {
	case "json":
		parser = json.Parser()
	case "yaml", "yml":
		parser = yaml.Parser()
	case "toml":
		parser = toml.Parser()
	default:
		return nil, fmt.Errorf("unsupported export format %q (want one of %s)", format, strings.Join(ExportFormats, ", "))
	}

	k := koanf.New(".")
	for _, e := range s.Entries() {
		if err := k.Set(e.Key.Path(), e.Value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", e.Key, err)
		}
	}

	out, err := k.Marshal(parser)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", format, err)
	}
	return out, nil
}
