package templates

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// VariantDefault renders plain CSS.
	VariantDefault = "default"

	// VariantTailwind adds Tailwind CSS and its PostCSS setup.
	VariantTailwind = "tailwind"
)

// RenderFunc produces the file set for fully resolved template data.
type RenderFunc func(data Data) (FileSet, error)

// Descriptor describes one archetype.
type Descriptor struct {
	// ID is the lowercase archetype identifier used on the command line.
	ID string

	// DefaultName is the project name used when none is given.
	DefaultName string

	// Description is a one-line summary shown by sitekit templates.
	Description string

	// Variants lists the supported template variants. The first is the default.
	Variants []string

	// Render produces the archetype's files.
	Render RenderFunc
}

// Options select how a descriptor renders.
type Options struct {
	// Variant is the template variant. Empty selects the default variant.
	Variant string

	// PackageManager is referenced in generated instructions.
	PackageManager string
}

// DefaultVariant returns the variant used when none is requested.
func (d Descriptor) DefaultVariant() string {
	if len(d.Variants) == 0 {
		return VariantDefault
	}
	return d.Variants[0]
}

// ResolveVariant normalizes a requested variant. It returns an error if the
// descriptor does not support it.
func (d Descriptor) ResolveVariant(variant string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(variant))
	if v == "" {
		return d.DefaultVariant(), nil
	}
	if len(d.Variants) == 0 && v == VariantDefault {
		return v, nil
	}
	if !slices.Contains(d.Variants, v) {
		return "", fmt.Errorf("unknown template %q for %s; valid templates: %s",
			variant, d.ID, strings.Join(d.Variants, ", "))
	}
	return v, nil
}

// Generate renders the archetype for the given project name. The returned
// set has been validated and is safe to write under the project directory.
func (d Descriptor) Generate(name string, opts Options) (FileSet, error) {
	variant, err := d.ResolveVariant(opts.Variant)
	if err != nil {
		return nil, err
	}
	if d.Render == nil {
		return nil, fmt.Errorf("archetype %s has no renderer", d.ID)
	}

	pm := opts.PackageManager
	if pm == "" {
		pm = "npm"
	}

	data := Data{
		Name:           name,
		Title:          Title(name),
		Archetype:      d.ID,
		Variant:        variant,
		Tailwind:       variant == VariantTailwind,
		Description:    d.Description,
		PackageManager: pm,
	}

	files, err := d.Render(data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", d.ID, err)
	}
	if err := files.Validate(); err != nil {
		return nil, fmt.Errorf("invalid file set for %s: %w", d.ID, err)
	}
	return files, nil
}

// Registry is an ordered set of descriptors with unique ids.
type Registry struct {
	descriptors []Descriptor
}

// NewRegistry creates a registry. Ids are lowercased; a duplicate id panics
// since registries are assembled at init time.
func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{}
	seen := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		d.ID = strings.ToLower(d.ID)
		if seen[d.ID] {
			panic(fmt.Sprintf("templates: duplicate archetype %q", d.ID))
		}
		seen[d.ID] = true
		r.descriptors = append(r.descriptors, d)
	}
	return r
}

// Lookup finds a descriptor by id, ignoring case and surrounding whitespace.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, d := range r.descriptors {
		if d.ID == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// IDs returns archetype ids in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		ids[i] = d.ID
	}
	return ids
}

// List returns the descriptors in registry order.
func (r *Registry) List() []Descriptor {
	return slices.Clone(r.descriptors)
}

var defaultRegistry = NewRegistry(
	Descriptor{
		ID:          "landingpage",
		DefaultName: "my-landing-page",
		Description: "Single-page marketing site with hero, features and sign-up sections",
		Variants:    []string{VariantDefault, VariantTailwind},
		Render:      renderArchetype,
	},
	Descriptor{
		ID:          "portfolio",
		DefaultName: "my-portfolio",
		Description: "Personal portfolio with an introduction, project cards and contact links",
		Variants:    []string{VariantDefault, VariantTailwind},
		Render:      renderArchetype,
	},
	Descriptor{
		ID:          "blog",
		DefaultName: "my-blog",
		Description: "Markdown blog with seed posts pre-rendered to HTML",
		Variants:    []string{VariantDefault, VariantTailwind},
		Render:      renderBlog,
	},
)

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry
}

// Lookup finds a built-in archetype.
func Lookup(id string) (Descriptor, bool) {
	return defaultRegistry.Lookup(id)
}

// IsSupported reports whether id names a built-in archetype.
func IsSupported(id string) bool {
	_, ok := defaultRegistry.Lookup(id)
	return ok
}

// IDs returns the built-in archetype ids.
func IDs() []string {
	return defaultRegistry.IDs()
}

// List returns the built-in descriptors.
func List() []Descriptor {
	return defaultRegistry.List()
}
