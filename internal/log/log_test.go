package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "usersvc/internal/log"
)

type logEntry struct {
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id"`
	Method string         `json:"method"`
	Path   string         `json:"path"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var out []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if json.Unmarshal([]byte(line), &e) == nil {
			out = append(out, e)
		}
	}
	return out
}

func TestRequestFieldsAndRedaction(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "rid-1" }}))
	app.Post("/login", func(c *fiber.Ctx) error {
		applog.Security(c, "auth.login.fail", map[string]any{"email": "a@x.test", "password": "hunter2"})
		return c.SendStatus(fiber.StatusUnauthorized)
	})

	entries := captureLogs(t, func() {
		_, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
	})
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "warn", e.Level)
	assert.Equal(t, "rid-1", e.ReqID)
	assert.Equal(t, "POST", e.Method)
	assert.Equal(t, "/login", e.Path)
	assert.Equal(t, "a@x.test", e.Fields["email"])
	assert.NotContains(t, e.Fields, "password")
}

func TestLevels(t *testing.T) {
	entries := captureLogs(t, func() {
		applog.Info(nil, "a", nil)
		applog.Audit(nil, "b", nil)
		applog.Error(nil, "c", errors.New("boom"), nil)
	})
	require.Len(t, entries, 3)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "audit", entries[1].Level)
	assert.Equal(t, "error", entries[2].Level)
	assert.Equal(t, "boom", entries[2].Err)
}

func TestSetupFileSink(t *testing.T) {
	oldW := log.Writer()
	defer log.SetOutput(oldW)

	path := filepath.Join(t.TempDir(), "usersvc.log")
	closer := applog.Setup(path)
	applog.Info(nil, "file.sink", nil)
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"action":"file.sink"`)

	assert.NoError(t, applog.Setup("").Close())
}
