package support

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MeKo-Tech/gs1scan/internal/server"
	"github.com/cucumber/godog"
)

// theDecodeServerIsRunning starts a server with default settings.
func (testCtx *TestContext) theDecodeServerIsRunning() error {
	return testCtx.startTestHTTPServer(server.Config{CORSOrigin: "*"})
}

// theDecodeServerIsRunningWithRateLimit starts a server limited to n
// requests per minute, replacing the background server.
func (testCtx *TestContext) theDecodeServerIsRunningWithRateLimit(n int) error {
	if err := testCtx.stopTestHTTPServer(); err != nil {
		return err
	}
	return testCtx.startTestHTTPServer(server.Config{
		CORSOrigin: "*",
		RateLimit: server.RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: n,
			RequestsPerHour:   1000,
			MaxRequestsPerDay: 5000,
			MaxDataPerDay:     100 * 1024 * 1024,
		},
	})
}

// doRequest performs an HTTP request against the test server and records
// the response.
func (testCtx *TestContext) doRequest(method, path string, body []byte) error {
	base, err := testCtx.serverURL()
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, base+path, reader) //nolint:noctx // short-lived test request
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	testCtx.LastHTTPStatusCode = resp.StatusCode
	testCtx.LastHTTPResponse = string(data)
	testCtx.LastHTTPHeaders = make(map[string]string)
	for k := range resp.Header {
		testCtx.LastHTTPHeaders[k] = resp.Header.Get(k)
	}
	return nil
}

// iDecodeTheBarcodeViaTheAPI posts a single barcode to /decode.
func (testCtx *TestContext) iDecodeTheBarcodeViaTheAPI(barcode string) error {
	body, err := json.Marshal(server.DecodeRequest{Barcode: testCtx.expandPlaceholders(barcode)})
	if err != nil {
		return err
	}
	return testCtx.doRequest(http.MethodPost, "/decode", body)
}

// iDecodeTheBarcodesViaTheBatchAPI posts newline-separated barcodes to
// /decode/batch.
func (testCtx *TestContext) iDecodeTheBarcodesViaTheBatchAPI(data *godog.DocString) error {
	var barcodes []string
	for _, line := range strings.Split(data.Content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		barcodes = append(barcodes, testCtx.expandPlaceholders(line))
	}

	body, err := json.Marshal(server.BatchDecodeRequest{Barcodes: barcodes, ContinueOnError: true})
	if err != nil {
		return err
	}
	return testCtx.doRequest(http.MethodPost, "/decode/batch", body)
}

// iRequestTheEndpoint performs a GET against the given path.
func (testCtx *TestContext) iRequestTheEndpoint(path string) error {
	return testCtx.doRequest(http.MethodGet, path, nil)
}

// theResponseStatusShouldBe asserts the last HTTP status code.
func (testCtx *TestContext) theResponseStatusShouldBe(status int) error {
	if testCtx.LastHTTPStatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s",
			status, testCtx.LastHTTPStatusCode, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseShouldContain asserts the response body contains text.
func (testCtx *TestContext) theResponseShouldContain(text string) error {
	text = testCtx.expandPlaceholders(text)
	if !strings.Contains(testCtx.LastHTTPResponse, text) {
		return fmt.Errorf("response does not contain %q:\n%s", text, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseShouldBeValidJSON asserts the response body parses as JSON.
func (testCtx *TestContext) theResponseShouldBeValidJSON() error {
	var v interface{}
	if err := json.Unmarshal([]byte(testCtx.LastHTTPResponse), &v); err != nil {
		return fmt.Errorf("response is not valid JSON: %w\n%s", err, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseHeaderShouldBePresent asserts a header was returned.
func (testCtx *TestContext) theResponseHeaderShouldBePresent(name string) error {
	if _, ok := testCtx.LastHTTPHeaders[http.CanonicalHeaderKey(name)]; !ok {
		return fmt.Errorf("response header %s not present in %v", name, testCtx.LastHTTPHeaders)
	}
	return nil
}

// iDecodeTheBarcodeNTimes repeats a decode request, keeping the last
// response. Used for rate limit scenarios.
func (testCtx *TestContext) iDecodeTheBarcodeNTimes(n int, barcode string) error {
	for i := 0; i < n; i++ {
		if err := testCtx.iDecodeTheBarcodeViaTheAPI(barcode); err != nil {
			return err
		}
	}
	return nil
}

// RegisterServerSteps wires the HTTP API step definitions.
func (testCtx *TestContext) RegisterServerSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the decode server is running$`, testCtx.theDecodeServerIsRunning)
	sc.Step(`^the decode server is running with a limit of (\d+) requests per minute$`,
		testCtx.theDecodeServerIsRunningWithRateLimit)

	sc.Step(`^I decode the barcode "([^"]*)" via the API$`, testCtx.iDecodeTheBarcodeViaTheAPI)
	sc.Step(`^I decode the barcode "([^"]*)" via the API (\d+) times$`,
		func(barcode string, n int) error { return testCtx.iDecodeTheBarcodeNTimes(n, barcode) })
	sc.Step(`^I decode the following barcodes via the batch API:$`, testCtx.iDecodeTheBarcodesViaTheBatchAPI)
	sc.Step(`^I request the "([^"]*)" endpoint$`, testCtx.iRequestTheEndpoint)

	sc.Step(`^the response status should be (\d+)$`, testCtx.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, testCtx.theResponseShouldContain)
	sc.Step(`^the response should be valid JSON$`, testCtx.theResponseShouldBeValidJSON)
	sc.Step(`^the response header "([^"]*)" should be present$`, testCtx.theResponseHeaderShouldBePresent)
}
