// Package apptest builds an app.App backed by an in-process dev server for
// command tests.
package apptest

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/api"
	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/config"
	"nathanbeddoewebdev/opsdeck/internal/devserver"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// New returns an App whose services talk to a dev server loaded with the
// default seed. The server is closed when the test ends.
func New(t testing.TB) *app.App {
	t.Helper()
	seed, err := devserver.DefaultSeed()
	if err != nil {
		t.Fatalf("failed to load seed: %v", err)
	}
	srv := httptest.NewServer(devserver.New(devserver.DefaultPrefix, devserver.WithSeed(seed)))
	t.Cleanup(srv.Close)

	a := &app.App{
		Config: &config.Config{},
		Logger: zerolog.Nop(),
		Origin: srv.URL + devserver.DefaultPrefix,
	}
	a.Bind(api.NewInventory(api.New(a.Origin, api.WithHTTPClient(srv.Client()))))
	return a
}

// Execute runs cmd with args and a context carrying a. It returns what was
// written to stdout and stderr along with the command's error.
func Execute(t testing.TB, a *app.App, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.SilenceErrors = true
	err = cmd.ExecuteContext(app.NewContext(context.Background(), a))
	return outBuf.String(), errBuf.String(), err
}
