package manifest

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/afoslt/pkg/naming"
)

// Default values applied to every key absent from the manifest file.
const (
	DefaultRoutesDirectory      = "config/routes"
	DefaultControllersKeyword   = "Controller"
	DefaultActionsKeyword       = "Action"
	DefaultControllersNamespace = "Controllers"
	DefaultViewsDirectory       = "views"
	DefaultLayoutsDirectory     = "layouts"
)

// Manifest is the application's startup configuration.
// A Manifest is read-only once Load returns it.
type Manifest struct {
	Name                 string `yaml:"name"`
	Version              string `yaml:"version"`
	RoutesDirectory      string `yaml:"routesDirectory"`
	ControllersKeyword   string `yaml:"controllersKeyword"`
	ActionsKeyword       string `yaml:"actionsKeyword"`
	ControllersNamespace string `yaml:"controllersNamespace"`
	DefaultLayout        string `yaml:"defaultLayout,omitempty"`
	ViewsDirectory       string `yaml:"viewsDirectory"`
	LayoutsDirectory     string `yaml:"layoutsDirectory"`
	Build                Build  `yaml:"build"`
	ReadGetPost          bool   `yaml:"readGetPost"`
	AddKeywords          bool   `yaml:"addKeywords"`
	StartupSession       bool   `yaml:"startupSession"`
}

// document mirrors Manifest with pointer fields so absent keys can be told
// apart from explicit zero values.
type document struct {
	Name                 *string `yaml:"name"`
	Version              *string `yaml:"version"`
	Build                *Build  `yaml:"build"`
	RoutesDirectory      *string `yaml:"routesDirectory"`
	ReadGetPost          *bool   `yaml:"readGetPost"`
	AddKeywords          *bool   `yaml:"addKeywords"`
	ControllersKeyword   *string `yaml:"controllersKeyword"`
	ActionsKeyword       *string `yaml:"actionsKeyword"`
	ControllersNamespace *string `yaml:"controllersNamespace"`
	StartupSession       *bool   `yaml:"startupSession"`
	DefaultLayout        *string `yaml:"defaultLayout"`
	ViewsDirectory       *string `yaml:"viewsDirectory"`
	LayoutsDirectory     *string `yaml:"layoutsDirectory"`
}

// Default returns a manifest with every option set to its default.
func Default() Manifest {
	return Manifest{
		Build:                BuildDebug,
		RoutesDirectory:      DefaultRoutesDirectory,
		ReadGetPost:          true,
		AddKeywords:          true,
		ControllersKeyword:   DefaultControllersKeyword,
		ActionsKeyword:       DefaultActionsKeyword,
		ControllersNamespace: DefaultControllersNamespace,
		StartupSession:       true,
		ViewsDirectory:       DefaultViewsDirectory,
		LayoutsDirectory:     DefaultLayoutsDirectory,
	}
}

// Load reads the manifest at name from fsys and applies defaults.
// JSON and YAML files are both accepted.
// Returns ErrNotFound if the file is missing and ErrInvalid if it cannot be parsed.
func Load(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("manifest: reading %q: %w", name, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Parse decodes manifest data and applies defaults for absent keys.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalid, err)
	}

	m := Default()
	setString(&m.Name, doc.Name)
	setString(&m.Version, doc.Version)
	setString(&m.RoutesDirectory, doc.RoutesDirectory)
	setString(&m.ControllersKeyword, doc.ControllersKeyword)
	setString(&m.ActionsKeyword, doc.ActionsKeyword)
	setString(&m.ControllersNamespace, doc.ControllersNamespace)
	setString(&m.DefaultLayout, doc.DefaultLayout)
	setString(&m.ViewsDirectory, doc.ViewsDirectory)
	setString(&m.LayoutsDirectory, doc.LayoutsDirectory)
	setBool(&m.ReadGetPost, doc.ReadGetPost)
	setBool(&m.AddKeywords, doc.AddKeywords)
	setBool(&m.StartupSession, doc.StartupSession)
	if doc.Build != nil {
		m.Build = *doc.Build
	}

	return &m, nil
}

// IsDebug reports whether the manifest selects the debug build.
func (m Manifest) IsDebug() bool {
	return m.Build == BuildDebug
}

// HasDefaultLayout reports whether a default layout is configured.
func (m Manifest) HasDefaultLayout() bool {
	return m.DefaultLayout != ""
}

// Conventions returns the naming conventions selected by the manifest.
func (m Manifest) Conventions() naming.Conventions {
	return naming.Conventions{
		RootNamespace:     m.ControllersNamespace,
		ControllerKeyword: m.ControllersKeyword,
		ActionKeyword:     m.ActionsKeyword,
		AddKeywords:       m.AddKeywords,
	}
}

func setString(dst *string, v *string) {
	// Empty strings count as absent.
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
