package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	manifestPath    = "package.json"
	manifestVersion = "0.1.0"
	schemaResource  = "package.schema.json"
)

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

var baseDependencies = map[string]string{
	"react":     "^18.3.1",
	"react-dom": "^18.3.1",
}

var baseDevDependencies = map[string]string{
	"@types/react":         "^18.3.3",
	"@types/react-dom":     "^18.3.0",
	"@vitejs/plugin-react": "^4.3.1",
	"typescript":           "^5.5.3",
	"vite":                 "^5.4.0",
}

var tailwindDevDependencies = map[string]string{
	"autoprefixer": "^10.4.20",
	"postcss":      "^8.4.41",
	"tailwindcss":  "^3.4.10",
}

// Manifest is the generated package.json. Field order here is the key order
// in the output; encoding/json sorts map keys, so the file is deterministic.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Type            string            `json:"type"`
	Description     string            `json:"description,omitempty"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// NewManifest builds the manifest for the given template data.
func NewManifest(data Data) Manifest {
	devDeps := merge(baseDevDependencies)
	if data.Tailwind {
		devDeps = merge(baseDevDependencies, tailwindDevDependencies)
	}

	return Manifest{
		Name:        data.Name,
		Version:     manifestVersion,
		Private:     true,
		Type:        "module",
		Description: data.Description,
		Scripts: map[string]string{
			"dev":     "vite",
			"build":   "tsc -b && vite build",
			"preview": "vite preview",
		},
		Dependencies:    merge(baseDependencies),
		DevDependencies: devDeps,
	}
}

// Encode renders the manifest as indented JSON with a trailing newline.
func (m Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", manifestPath, err)
	}
	return buf.Bytes(), nil
}

// SchemaError lists the schema violations of a manifest.
type SchemaError struct {
	Issues []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s does not match schema: %s", manifestPath, strings.Join(e.Issues, "; "))
}

// ValidateManifest checks encoded package.json content against the embedded
// schema. Violations are returned as a *SchemaError.
func ValidateManifest(content []byte) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", manifestPath, err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []string
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = append(issues, ve.Error())
	}
	return &SchemaError{Issues: issues}
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(manifestSchema))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaResource, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaResource)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// collectIssues walks the error tree and records leaf errors as
// "/instance/path: message".
func collectIssues(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil {
			return
		}
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		*issues = append(*issues, loc+": "+ve.ErrorKind.LocalizedString(printer))
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}

func merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
