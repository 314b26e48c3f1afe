package support

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/MeKo-Tech/gs1scan/internal/server"
)

// HTTPTestServerWrapper wraps httptest.Server for integration tests.
type HTTPTestServerWrapper struct {
	Server     *httptest.Server
	TestServer *server.Server
}

// startTestHTTPServer starts an in-process decode server.
func (testCtx *TestContext) startTestHTTPServer(config server.Config) error {
	if testCtx.HTTPTestServer != nil {
		return fmt.Errorf("test server already running")
	}

	srv, err := server.NewServer(config)
	if err != nil {
		return fmt.Errorf("failed to create decode server: %w", err)
	}

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	testCtx.HTTPTestServer = &HTTPTestServerWrapper{
		Server:     httptest.NewServer(mux),
		TestServer: srv,
	}
	return nil
}

// stopTestHTTPServer shuts down the in-process decode server.
func (testCtx *TestContext) stopTestHTTPServer() error {
	if testCtx.HTTPTestServer == nil {
		return nil
	}
	testCtx.HTTPTestServer.Server.Close()
	testCtx.HTTPTestServer = nil
	return nil
}

// serverURL returns the base URL of the running test server.
func (testCtx *TestContext) serverURL() (string, error) {
	if testCtx.HTTPTestServer == nil {
		return "", fmt.Errorf("no test server running")
	}
	return testCtx.HTTPTestServer.Server.URL, nil
}
