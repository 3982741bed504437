package deploy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplateOptions(version string) TemplateOptions {
	coordinates := entities.ArtifactCoordinates{GroupId: "com.example", ArtifactId: "foo", Version: version, Packaging: "jar"}
	return TemplateOptions{
		ArtifactCoordinates: coordinates,
		LastUpdated:         "20240102030405",
		Snapshot:            coordinates.IsSnapshot(),
	}
}

func TestRenderOuterMetadata(t *testing.T) {
	renderer := NewTemplateRenderer("")
	content, err := renderer.Render(OuterMetadataTemplate, newTemplateOptions("1.0"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<groupId>com.example</groupId>")
	assert.Contains(t, string(content), "<latest>1.0</latest>")
	assert.Contains(t, string(content), "<release>1.0</release>")
	assert.Contains(t, string(content), "<lastUpdated>20240102030405</lastUpdated>")

	content, err = renderer.Render(OuterMetadataTemplate, newTemplateOptions("1.0-SNAPSHOT"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<latest>1.0-SNAPSHOT</latest>")
	assert.NotContains(t, string(content), "<release>")
}

func TestRenderInnerMetadata(t *testing.T) {
	options := newTemplateOptions("1.0-SNAPSHOT")
	options.Classifier = "sources"
	content, err := NewTemplateRenderer("").Render(InnerMetadataTemplate, options)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<version>1.0-SNAPSHOT</version>")
	assert.Contains(t, string(content), "<classifier>sources</classifier>")
	assert.Contains(t, string(content), "<extension>jar</extension>")
	assert.Contains(t, string(content), "<extension>pom</extension>")
}

func TestRenderDescriptor(t *testing.T) {
	options := newTemplateOptions("1.0")
	options.Properties = map[string]string{"build.number": "42", "description": "a < b & c"}
	content, err := NewTemplateRenderer("").Render(DescriptorTemplate, options)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<packaging>jar</packaging>")
	assert.Contains(t, string(content), "<build.number>42</build.number>")
	assert.Contains(t, string(content), "<description>a &lt; b &amp; c</description>")

	content, err = NewTemplateRenderer("").Render(DescriptorTemplate, newTemplateOptions("1.0"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "<properties>")
}

func TestRenderInvalidPropertyName(t *testing.T) {
	options := newTemplateOptions("1.0")
	options.Properties = map[string]string{"1st": "x"}
	_, err := NewTemplateRenderer("").Render(DescriptorTemplate, options)
	assert.ErrorContains(t, err, "'1st' is not a valid XML element name")
}

func TestRenderCustomTemplateDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DescriptorTemplate), []byte("<project>{{.ArtifactId}}-{{.LastUpdated}}</project>"), 0644))
	renderer := NewTemplateRenderer(dir)
	content, err := renderer.Render(DescriptorTemplate, newTemplateOptions("1.0"))
	require.NoError(t, err)
	assert.Equal(t, "<project>foo-20240102030405</project>", string(content))

	// Only the templates in the directory are available.
	_, err = renderer.Render(OuterMetadataTemplate, newTemplateOptions("1.0"))
	assert.Error(t, err)
}

func TestValidateXmlName(t *testing.T) {
	for _, name := range []string{"version", "build.number", "_x", "a-b"} {
		_, err := validateXmlName(name)
		assert.NoError(t, err, name)
	}
	for _, name := range []string{"", "1a", "a b", "xmlFoo", "a<b"} {
		_, err := validateXmlName(name)
		assert.Error(t, err, name)
	}
}
