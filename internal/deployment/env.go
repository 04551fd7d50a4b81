package deployment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Target describes one deployment topology and where its files live, relative
// to the deploy directory.
type Target struct {
	Name        string
	ComposeFile string
	EnvFile     string
	EnvTemplate string
	Environment string
	Production  bool
	Proxied     bool
}

var (
	Development = Target{
		Name:        "dev",
		ComposeFile: "docker-compose.dev.yml",
		EnvFile:     "env/dev.env",
		EnvTemplate: "env/dev.env.example",
		Environment: "DEVELOPMENT",
	}
	Staging = Target{
		Name:        "staging",
		ComposeFile: "docker-compose.staging.yml",
		EnvFile:     "env/staging.env",
		EnvTemplate: "env/staging.env.example",
		Environment: "STAGING",
		Proxied:     true,
	}
	Production = Target{
		Name:        "prod",
		ComposeFile: "docker-compose.prod.yml",
		EnvFile:     "env/prod.env",
		EnvTemplate: "env/prod.env.example",
		Environment: "PRODUCTION",
		Production:  true,
		Proxied:     true,
	}
)

func Targets() []Target {
	return []Target{Development, Staging, Production}
}

// EnvTemplate is a flat key/value env file as read by godotenv.
type EnvTemplate map[string]string

func ParseEnvTemplate(content string) (EnvTemplate, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("parsing env template: %w", err)
	}
	return values, nil
}

func LoadEnvTemplate(path string) (EnvTemplate, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

func (t EnvTemplate) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// Keys returns the keys with the given prefix.
func (t EnvTemplate) Keys(prefix string) []string {
	var keys []string
	for key := range t {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func join(dir string, path string) string {
	return filepath.Join(dir, filepath.FromSlash(path))
}
