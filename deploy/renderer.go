package deploy

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/jfrog/maven-deploy-go/entities"
)

const (
	OuterMetadataTemplate = "project-metadata.xml"
	InnerMetadataTemplate = "latest-metadata.xml"
	DescriptorTemplate    = "pom.xml"

	// Maven metadata timestamps use the yyyyMMddHHmmss format.
	lastUpdatedLayout = "20060102150405"
)

//go:embed templates/*.xml
var defaultTemplates embed.FS

var xmlNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// TemplateOptions is the data passed to every metadata template.
type TemplateOptions struct {
	entities.ArtifactCoordinates
	// Generation time in yyyyMMddHHmmss (UTC).
	LastUpdated string
	Snapshot    bool
	Properties  map[string]string
}

// Renderer renders a named metadata template into a finished document.
type Renderer interface {
	Render(name string, options TemplateOptions) ([]byte, error)
}

// TemplateRenderer renders text/template files from a file system.
type TemplateRenderer struct {
	templates fs.FS
}

// NewTemplateRenderer returns a renderer over templateDir, or over the built-in templates if templateDir is empty.
func NewTemplateRenderer(templateDir string) *TemplateRenderer {
	if templateDir != "" {
		return &TemplateRenderer{templates: os.DirFS(templateDir)}
	}
	builtIn, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		// The embedded directory is known at compile time.
		panic(err)
	}
	return &TemplateRenderer{templates: builtIn}
}

func (tr *TemplateRenderer) Render(name string, options TemplateOptions) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(templateFuncs).ParseFS(tr.templates, name)
	if err != nil {
		return nil, err
	}
	var content bytes.Buffer
	if err = tmpl.ExecuteTemplate(&content, name, options); err != nil {
		return nil, err
	}
	return content.Bytes(), nil
}

var templateFuncs = template.FuncMap{
	"xml":     escapeXml,
	"xmlName": validateXmlName,
}

func escapeXml(value string) (string, error) {
	var escaped strings.Builder
	if err := xml.EscapeText(&escaped, []byte(value)); err != nil {
		return "", err
	}
	return escaped.String(), nil
}

func validateXmlName(name string) (string, error) {
	if !xmlNamePattern.MatchString(name) || strings.HasPrefix(strings.ToLower(name), "xml") {
		return "", fmt.Errorf("'%s' is not a valid XML element name", name)
	}
	return name, nil
}
