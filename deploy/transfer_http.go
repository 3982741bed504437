package deploy

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/jfrog/maven-deploy-go/utils"
	"golang.org/x/net/http/httpproxy"
)

const (
	// Exit code reported when the HTTP request did not complete.
	httpTransferFailedExitCode = 1
	// Only the beginning of an error response is kept for the error message.
	maxErrorBodySize = 64 * 1024
)

// HttpTransferer uploads files with HTTP PUT requests. Failed requests are never retried.
type HttpTransferer struct {
	client  *retryablehttp.Client
	options TransferOptions
	log     utils.Log
}

func NewHttpTransferer(options TransferOptions) *HttpTransferer {
	transport := cleanhttp.DefaultPooledTransport()
	proxyFunc := newProxyFunc(options.NoProxy)
	transport.Proxy = func(req *http.Request) (*url.URL, error) {
		return proxyFunc(req.URL)
	}
	if options.Insecure {
		// #nosec G402 -- Explicitly requested to accept self-signed certificates.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Transport: transport, Timeout: options.Timeout}
	client.RetryMax = 0
	client.CheckRetry = neverRetry
	client.Logger = nil

	return &HttpTransferer{client: client, options: options, log: &utils.NullLog{}}
}

func (ht *HttpTransferer) SetLogger(log utils.Log) *HttpTransferer {
	ht.log = log
	ht.client.Logger = newLeveledLogger(log)
	return ht
}

func (ht *HttpTransferer) Transfer(localPath, targetUrl string) (*TransferResult, error) {
	failed := &TransferResult{ExitCode: httpTransferFailedExitCode}
	file, err := os.Open(localPath)
	if err != nil {
		return failed, err
	}
	defer func() {
		_ = file.Close()
	}()
	fileInfo, err := file.Stat()
	if err != nil {
		return failed, err
	}

	req, err := retryablehttp.NewRequest(http.MethodPut, targetUrl, file)
	if err != nil {
		return failed, errors.New(utils.MaskSecrets(err.Error(), ht.options.password()))
	}
	req.ContentLength = fileInfo.Size()
	if ht.options.Auth != nil {
		req.SetBasicAuth(ht.options.Auth.Username, ht.options.Auth.Password)
	}
	resp, err := ht.client.Do(req)
	if err != nil {
		return failed, errors.New(utils.MaskSecrets(err.Error(), ht.options.password()))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	result := &TransferResult{Status: strconv.Itoa(resp.StatusCode)}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		ht.log.Debug("Failed reading the response body of " + utils.RemoveCredentials(targetUrl) + ": " + err.Error())
	}
	// Drain the rest so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		result.Message = parseRepositoryMessage(body)
	}
	return result, nil
}

// newProxyFunc reads the proxy settings from the environment and adds noProxy to the hosts reached directly.
func newProxyFunc(noProxy string) func(*url.URL) (*url.URL, error) {
	proxyConfig := httpproxy.FromEnvironment()
	if noProxy != "" {
		if proxyConfig.NoProxy != "" {
			proxyConfig.NoProxy += ","
		}
		proxyConfig.NoProxy += noProxy
	}
	return proxyConfig.ProxyFunc()
}

// neverRetry lets retryablehttp return every response as-is, and every transport error as an error.
func neverRetry(_ context.Context, _ *http.Response, err error) (bool, error) {
	return false, err
}

// parseRepositoryMessage extracts a readable message from a repository error response.
// Artifactory answers with {"errors":[{"status":...,"message":...}]}, Nexus with {"message":...} or plain text.
func parseRepositoryMessage(body []byte) string {
	var messages []string
	_, _ = jsonparser.ArrayEach(body, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		if message, err := jsonparser.GetString(value, "message"); err == nil && message != "" {
			messages = append(messages, message)
		}
	}, "errors")
	if len(messages) > 0 {
		return strings.Join(messages, "; ")
	}
	if message, err := jsonparser.GetString(body, "message"); err == nil {
		return message
	}
	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "<") || strings.HasPrefix(text, "{") {
		return ""
	}
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
