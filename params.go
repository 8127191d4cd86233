package di

import (
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadEnvParameters reads dotenv files and stores every variable as a string
// parameter. Later files override earlier ones. With no paths it reads ".env".
func (c *Container) LoadEnvParameters(paths ...string) error {
	values, err := godotenv.Read(paths...)
	if err != nil {
		return fmt.Errorf("load env parameters: %w", err)
	}

	for key, value := range values {
		c.SetParameter(key, value)
	}

	return nil
}

// LoadYAMLParameters decodes a YAML mapping and stores its leaves as
// parameters. Nested mapping keys are joined with dots, so
//
//	db:
//	  host: localhost
//
// is stored as "db.host". Sequences are stored as []any values.
func (c *Container) LoadYAMLParameters(r io.Reader) error {
	var document map[string]any

	if err := yaml.NewDecoder(r).Decode(&document); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("load yaml parameters: %w", err)
	}

	flattenParameters(c, "", document)

	return nil
}

func flattenParameters(c *Container, prefix string, values map[string]any) {
	for key, value := range values {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			flattenParameters(c, name, nested)
			continue
		}

		c.SetParameter(strings.TrimSpace(name), value)
	}
}
