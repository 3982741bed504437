package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/jfrog/maven-deploy-go/deploy"
	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/jfrog/maven-deploy-go/utils"
	"github.com/pkg/errors"
	clitool "github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	urlFlag         = "url"
	groupIdFlag     = "group-id"
	artifactIdFlag  = "artifact-id"
	versionFlag     = "version"
	packagingFlag   = "packaging"
	classifierFlag  = "classifier"
	artifactFlag    = "artifact"
	stagingDirFlag  = "staging-dir"
	parallelFlag    = "parallel"
	quietFlag       = "quiet"
	usernameFlag    = "username"
	passwordFlag    = "password"
	insecureFlag    = "insecure"
	noProxyFlag     = "noproxy"
	cwdFlag         = "cwd"
	transportFlag   = "transport"
	timeoutFlag     = "timeout"
	sha256Flag      = "sha256"
	templateDirFlag = "template-dir"
	propertyFlag    = "property"
	configFlag      = "config"
	formatFlag      = "format"

	cycloneDxXml  = "cyclonedx/xml"
	cycloneDxJson = "cyclonedx/json"

	passwordEnv = "MAVEN_DEPLOY_PASSWORD"
)

func GetCommands(logger utils.Log) []*clitool.Command {
	flags := publicationFlags()
	return []*clitool.Command{
		{
			Name:      "deploy",
			Usage:     "Publish an artifact with its pom and metadata to a Maven repository",
			UsageText: "mvn-deploy deploy --url <repository> --group-id <g> --artifact-id <a> --version <v> --artifact <file>",
			Flags: append(flags, &clitool.StringFlag{
				Name:  formatFlag,
				Usage: fmt.Sprintf("[Optional] Set to print the publication report in a different format. Supported values are '%s' and '%s'.` `", cycloneDxXml, cycloneDxJson),
			}),
			Action: func(context *clitool.Context) error {
				format := context.String(formatFlag)
				if !slices.Contains([]string{"", cycloneDxXml, cycloneDxJson}, format) {
					return fmt.Errorf("'%s' is not a valid value for '%s'", format, formatFlag)
				}
				request, transport, err := createPublicationRequest(context)
				if err != nil {
					return err
				}
				logProperties(logger, request.Properties)
				report, err := deploy.NewPublisher().SetLogger(logger).SetTransport(transport).Publish(request)
				if err != nil {
					return err
				}
				return printReport(context.App.Writer, report, format)
			},
		},
		{
			Name:      "plan",
			Usage:     "Print the files a deployment would upload, without uploading them",
			UsageText: "mvn-deploy plan --url <repository> --group-id <g> --artifact-id <a> --version <v> --artifact <file>",
			Flags:     flags,
			Action: func(context *clitool.Context) error {
				request, _, err := createPublicationRequest(context)
				if err != nil {
					return err
				}
				tasks, err := deploy.NewPublisher().SetLogger(logger).PlanOnly(request)
				if err != nil {
					return err
				}
				for _, task := range tasks {
					_, err = fmt.Fprintln(context.App.Writer, task.LocalPath+" -> "+utils.RemoveCredentials(deploy.TargetUrl(request.RepositoryUrl, task.RemotePath)))
					if err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

func publicationFlags() []clitool.Flag {
	return []clitool.Flag{
		&clitool.StringFlag{Name: urlFlag, Usage: "[Mandatory] Base URL of the Maven repository.` `"},
		&clitool.StringFlag{Name: groupIdFlag, Usage: "[Mandatory] Group ID of the artifact.` `"},
		&clitool.StringFlag{Name: artifactIdFlag, Usage: "[Mandatory] Artifact ID.` `"},
		&clitool.StringFlag{Name: versionFlag, Usage: "[Mandatory] Version. Versions ending with SNAPSHOT also publish version-level metadata.` `"},
		&clitool.StringFlag{Name: packagingFlag, Value: "jar", Usage: "[Default: jar] Packaging, used as the artifact file extension.` `"},
		&clitool.StringFlag{Name: classifierFlag, Usage: "[Optional] Classifier of the artifact, e.g. 'sources'.` `"},
		&clitool.StringFlag{Name: artifactFlag, Usage: "[Mandatory] Path of the artifact file to publish.` `"},
		&clitool.StringFlag{Name: stagingDirFlag, Usage: fmt.Sprintf("[Default: %s] Directory for the generated metadata and checksum files.` `", entities.DefaultStagingDir)},
		&clitool.BoolFlag{Name: parallelFlag, Usage: "[Default: false] Upload all files concurrently.` `"},
		&clitool.BoolFlag{Name: quietFlag, Usage: "[Default: false] Don't print progress and result messages.` `"},
		&clitool.StringFlag{Name: usernameFlag, Usage: "[Optional] Repository username.` `"},
		&clitool.StringFlag{Name: passwordFlag, EnvVars: []string{passwordEnv}, Usage: "[Optional] Repository password.` `"},
		&clitool.BoolFlag{Name: insecureFlag, Usage: "[Default: false] Skip TLS certificate verification.` `"},
		&clitool.StringFlag{Name: noProxyFlag, Usage: fmt.Sprintf("[Default: %s] Host to reach without a proxy.` `", entities.DefaultNoProxy)},
		&clitool.StringFlag{Name: cwdFlag, Usage: "[Optional] Working directory for relative paths and for the transfer process.` `"},
		&clitool.StringFlag{Name: transportFlag, Usage: fmt.Sprintf("[Default: %s] Transfer method, '%s' or '%s'.` `", deploy.HttpTransport, deploy.HttpTransport, deploy.CurlTransport)},
		&clitool.DurationFlag{Name: timeoutFlag, Usage: "[Optional] Timeout of a single file transfer, e.g. '2m'.` `"},
		&clitool.BoolFlag{Name: sha256Flag, Usage: "[Default: false] Also upload .sha256 checksum files.` `"},
		&clitool.StringFlag{Name: templateDirFlag, Usage: "[Optional] Directory with custom metadata templates.` `"},
		&clitool.StringSliceFlag{Name: propertyFlag, Usage: "[Optional] Property added to the generated pom, in the form key=value. Can be repeated.` `"},
		&clitool.StringFlag{Name: configFlag, Usage: "[Optional] Path to a TOML or YAML file with default values for these flags.` `"},
	}
}

// createPublicationRequest merges the config file, if any, with the flags. Flags set on the command line win.
func createPublicationRequest(context *clitool.Context) (*entities.PublicationRequest, deploy.TransportType, error) {
	config := &FileConfig{}
	if configPath := context.String(configFlag); configPath != "" {
		var err error
		if config, err = LoadFileConfig(configPath); err != nil {
			return nil, "", err
		}
	}
	stringValue := func(flagName, configValue string) string {
		if context.IsSet(flagName) || configValue == "" {
			return context.String(flagName)
		}
		return configValue
	}
	boolValue := func(flagName string, configValue bool) bool {
		if context.IsSet(flagName) {
			return context.Bool(flagName)
		}
		return configValue
	}

	request := &entities.PublicationRequest{
		Coordinates: entities.ArtifactCoordinates{
			GroupId:    stringValue(groupIdFlag, config.Coordinates.GroupId),
			ArtifactId: stringValue(artifactIdFlag, config.Coordinates.ArtifactId),
			Version:    stringValue(versionFlag, config.Coordinates.Version),
			Packaging:  stringValue(packagingFlag, config.Coordinates.Packaging),
			Classifier: stringValue(classifierFlag, config.Coordinates.Classifier),
		},
		ArtifactPath:  stringValue(artifactFlag, config.Artifact),
		RepositoryUrl: stringValue(urlFlag, config.Url),
		StagingDir:    stringValue(stagingDirFlag, config.StagingDir),
		Parallel:      boolValue(parallelFlag, config.Parallel),
		Quiet:         boolValue(quietFlag, config.Quiet),
		Insecure:      boolValue(insecureFlag, config.Insecure),
		NoProxy:       stringValue(noProxyFlag, config.NoProxy),
		WorkingDir:    stringValue(cwdFlag, config.Cwd),
		Sha256:        boolValue(sha256Flag, config.Sha256),
		TemplateDir:   stringValue(templateDirFlag, config.TemplateDir),
	}
	if username := stringValue(usernameFlag, config.Username); username != "" {
		request.Auth = &entities.Credentials{Username: username, Password: stringValue(passwordFlag, config.Password)}
	}

	timeout, err := config.timeout()
	if err != nil {
		return nil, "", err
	}
	if context.IsSet(timeoutFlag) {
		timeout = context.Duration(timeoutFlag)
	}
	request.Timeout = timeout

	flagProperties, err := extractProperties(context.StringSlice(propertyFlag))
	if err != nil {
		return nil, "", err
	}
	if len(config.Properties)+len(flagProperties) > 0 {
		request.Properties = map[string]string{}
		maps.Copy(request.Properties, config.Properties)
		maps.Copy(request.Properties, flagProperties)
	}
	return request, deploy.TransportType(stringValue(transportFlag, config.Transport)), nil
}

// extractProperties parses key=value pairs. The value may contain '=' characters.
func extractProperties(pairs []string) (map[string]string, error) {
	properties := map[string]string{}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, errors.New("Failed extracting property '" + pair + "', expected the form key=value")
		}
		properties[key] = value
	}
	return properties, nil
}

func logProperties(logger utils.Log, properties map[string]string) {
	keys := maps.Keys(properties)
	slices.Sort(keys)
	for _, key := range keys {
		logger.Debug("Property " + key + "=" + properties[key])
	}
}

func printReport(writer io.Writer, report *entities.PublicationReport, format string) error {
	switch format {
	case cycloneDxXml:
		encoder := cdx.NewBOMEncoder(writer, cdx.BOMFileFormatXML)
		encoder.SetPretty(true)
		return encoder.Encode(report.ToCycloneDxBom())
	case cycloneDxJson:
		encoder := cdx.NewBOMEncoder(writer, cdx.BOMFileFormatJSON)
		encoder.SetPretty(true)
		return encoder.Encode(report.ToCycloneDxBom())
	case "":
		b, err := json.Marshal(report)
		if err != nil {
			return err
		}
		var content bytes.Buffer
		if err = json.Indent(&content, b, "", "  "); err != nil {
			return err
		}
		_, err = fmt.Fprintln(writer, content.String())
		return err
	default:
		return fmt.Errorf("'%s' is not a valid value for '%s'", format, formatFlag)
	}
}
