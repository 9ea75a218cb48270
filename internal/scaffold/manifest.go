package scaffold

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stencilworks/stencil/internal/errors"
)

// StructureEntry names one template and the output pattern its rendered
// content is written to. The output pattern may contain {{key}}
// placeholders resolved against the manifest's variables.
type StructureEntry struct {
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
}

// Manifest describes a scaffold: a template directory, an output directory
// pattern, a variable set, and the list of files to generate. Post lists
// commands run in the resolved output directory after a successful
// non-dry-run scaffold.
type Manifest struct {
	Engine      string           `yaml:"engine"`
	TemplateDir string           `yaml:"templateDir"`
	OutputDir   string           `yaml:"outputDir"`
	Variables   *Variables       `yaml:"variables"`
	Structure   []StructureEntry `yaml:"structure"`
	Post        []string         `yaml:"post"`
	DryRun      bool             `yaml:"dryRun"`
}

// LoadManifest reads and validates a YAML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeReadFailed, "reading manifest", err).WithPath(path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeManifestInvalid, fmt.Sprintf("parsing manifest: %v", err)).WithPath(path)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for the failures worth catching before any
// file system work starts.
func (m *Manifest) Validate() error {
	if m.TemplateDir == "" {
		return errors.NewConfigError(errors.ErrCodeManifestInvalid, "manifest is missing templateDir")
	}
	if m.OutputDir == "" {
		return errors.NewConfigError(errors.ErrCodeManifestInvalid, "manifest is missing outputDir")
	}
	for i, entry := range m.Structure {
		if entry.Template == "" {
			return errors.NewConfigError(errors.ErrCodeManifestInvalid, fmt.Sprintf("structure entry %d is missing template", i))
		}
		if entry.Output == "" {
			return errors.NewConfigError(errors.ErrCodeManifestInvalid, fmt.Sprintf("structure entry %d is missing output", i))
		}
	}
	return nil
}
