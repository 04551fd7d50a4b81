package deployment

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	RestartUnlessStopped = "unless-stopped"

	ConditionServiceStarted   = "service_started"
	ConditionServiceHealthy   = "service_healthy"
	ConditionServiceCompleted = "service_completed_successfully"
)

// StringList accepts a scalar or a sequence.
type StringList []string

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = StringList{node.Value}
		return nil

	case yaml.SequenceNode:
		var values []string
		err := node.Decode(&values)
		if err != nil {
			return err
		}
		*l = values
		return nil

	default:
		return fmt.Errorf("line %d: expected a string or a list", node.Line)
	}
}

// NameSet accepts a sequence of names or a mapping keyed by name.
type NameSet []string

func (s *NameSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var values []string
		err := node.Decode(&values)
		if err != nil {
			return err
		}
		*s = values
		return nil

	case yaml.MappingNode:
		names := make([]string, 0, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			names = append(names, node.Content[i].Value)
		}
		*s = names
		return nil

	default:
		return fmt.Errorf("line %d: expected a list or a mapping", node.Line)
	}
}

func (s NameSet) Contains(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

// Environment accepts both the mapping and the KEY=VALUE list form.
type Environment map[string]string

func (e *Environment) UnmarshalYAML(node *yaml.Node) error {
	result := make(Environment)

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i < len(node.Content); i += 2 {
			result[node.Content[i].Value] = node.Content[i+1].Value
		}

	case yaml.SequenceNode:
		var entries []string
		err := node.Decode(&entries)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			key, value, _ := strings.Cut(entry, "=")
			result[key] = value
		}

	default:
		return fmt.Errorf("line %d: expected a list or a mapping", node.Line)
	}

	*e = result
	return nil
}

type Dependency struct {
	Condition string `yaml:"condition"`
}

// Dependencies accepts the short list form, which means service_started.
type Dependencies map[string]Dependency

func (d *Dependencies) UnmarshalYAML(node *yaml.Node) error {
	result := make(Dependencies)

	switch node.Kind {
	case yaml.SequenceNode:
		var names []string
		err := node.Decode(&names)
		if err != nil {
			return err
		}
		for _, name := range names {
			result[name] = Dependency{Condition: ConditionServiceStarted}
		}

	case yaml.MappingNode:
		var entries map[string]Dependency
		err := node.Decode(&entries)
		if err != nil {
			return err
		}
		for name, dependency := range entries {
			if dependency.Condition == "" {
				dependency.Condition = ConditionServiceStarted
			}
			result[name] = dependency
		}

	default:
		return fmt.Errorf("line %d: expected a list or a mapping", node.Line)
	}

	*d = result
	return nil
}

type Healthcheck struct {
	Test     StringList `yaml:"test"`
	Interval string     `yaml:"interval"`
	Timeout  string     `yaml:"timeout"`
	Retries  int        `yaml:"retries"`
}

type Service struct {
	Image       string       `yaml:"image"`
	Command     StringList   `yaml:"command"`
	Restart     string       `yaml:"restart"`
	EnvFile     StringList   `yaml:"env_file"`
	Environment Environment  `yaml:"environment"`
	Ports       []string     `yaml:"ports"`
	DependsOn   Dependencies `yaml:"depends_on"`
	Healthcheck *Healthcheck `yaml:"healthcheck"`
	Networks    NameSet      `yaml:"networks"`
	Volumes     []string     `yaml:"volumes"`

	// Variables lists the ${VAR} references found anywhere in the service.
	Variables []VariableRef `yaml:"-"`
}

type ComposeFile struct {
	Name     string             `yaml:"name"`
	Services map[string]Service `yaml:"services"`
	Networks NameSet            `yaml:"networks"`
}

// ServiceNames returns the service names in a stable order.
func (c *ComposeFile) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsOneShot reports whether another service waits for name to complete.
func (c *ComposeFile) IsOneShot(name string) bool {
	for _, service := range c.Services {
		if dependency, ok := service.DependsOn[name]; ok && dependency.Condition == ConditionServiceCompleted {
			return true
		}
	}
	return false
}

type VariableRef struct {
	Name string
	// Optional is set when the reference carries a default value.
	Optional bool
}

var variablePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:?[-?+][^}]*)?\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// FindVariables returns the interpolation references in a compose value.
// Escaped dollars ($$) are skipped.
func FindVariables(value string) []VariableRef {
	value = strings.ReplaceAll(value, "$$", "")

	var refs []VariableRef
	for _, match := range variablePattern.FindAllStringSubmatch(value, -1) {
		if match[3] != "" {
			refs = append(refs, VariableRef{Name: match[3]})
			continue
		}

		modifier := strings.TrimPrefix(match[2], ":")
		refs = append(refs, VariableRef{
			Name:     match[1],
			Optional: strings.HasPrefix(modifier, "-") || strings.HasPrefix(modifier, "+"),
		})
	}
	return refs
}

func collectVariables(node *yaml.Node, refs []VariableRef) []VariableRef {
	if node.Kind == yaml.ScalarNode {
		return append(refs, FindVariables(node.Value)...)
	}
	for _, child := range node.Content {
		refs = collectVariables(child, refs)
	}
	return refs
}

func ParseCompose(data []byte) (*ComposeFile, error) {
	var compose ComposeFile
	err := yaml.Unmarshal(data, &compose)
	if err != nil {
		return nil, fmt.Errorf("parsing compose file: %w", err)
	}

	var raw struct {
		Services map[string]yaml.Node `yaml:"services"`
	}
	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("parsing compose services: %w", err)
	}

	for name, node := range raw.Services {
		service := compose.Services[name]
		service.Variables = collectVariables(&node, nil)
		compose.Services[name] = service
	}

	return &compose, nil
}

func LoadCompose(path string) (*ComposeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	compose, err := ParseCompose(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return compose, nil
}
