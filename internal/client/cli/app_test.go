package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/suimirror/internal/client/client"
	"github.com/dmitrijs2005/suimirror/internal/client/config"
	"github.com/dmitrijs2005/suimirror/internal/client/i18n"
	"github.com/dmitrijs2005/suimirror/internal/client/mirror"
	"github.com/dmitrijs2005/suimirror/internal/client/notify"
	"github.com/dmitrijs2005/suimirror/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/suimirror/internal/client/services"
	"github.com/dmitrijs2005/suimirror/internal/logging"
)

// fakePanel serves canned envelopes per endpoint and records the requests.
type fakePanel struct {
	mu       sync.Mutex
	requests []string
	forms    map[string]url.Values
	objs     map[string]string
}

func (p *fakePanel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimPrefix(r.URL.Path, "/api/")
	_ = r.ParseForm()

	p.mu.Lock()
	p.requests = append(p.requests, action)
	p.forms[action] = r.Form
	obj, ok := p.objs[action]
	p.mu.Unlock()

	if !ok {
		obj = "null"
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"success":true,"msg":"","obj":`+obj+`}`)
}

func (p *fakePanel) form(action string) url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.forms[action]
}

func (p *fakePanel) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

func (p *fakePanel) seen(action string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.requests {
		if r == action {
			return true
		}
	}
	return false
}

func newTestApp(t *testing.T, input string) (*App, *fakePanel, *notify.Recorder) {
	t.Helper()

	panel := &fakePanel{forms: map[string]url.Values{}, objs: map[string]string{
		"load":     `{"onlines":{"inbound":[],"outbound":[],"user":[]},"config":{},"clients":[{"id":5,"name":"bob"}],"inbounds":[{"id":1,"tag":"in-1"}]}`,
		"nodeMode": `{"mode":"master","isReadOnly":false}`,
		"apiKeys":  `[{"id":1,"name":"ci","enable":true}]`,
	}}
	server := httptest.NewServer(panel)
	t.Cleanup(server.Close)

	rec := &notify.Recorder{}
	gw, err := client.NewHTTPGateway(client.HTTPGatewayOptions{BaseURL: server.URL, HTTPClient: server.Client(), Notifier: rec})
	require.NoError(t, err)

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	store := services.NewStore(gw, mirror.New(), rec, i18n.New("en"), nil)
	prefs := services.NewPreferences(metadata.NewSQLiteRepository(db), nil)
	a := newApp(cfg, store, prefs, logging.Nop(), bufio.NewReader(strings.NewReader(input)), io.Discard)
	return a, panel, rec
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = old })
}

func TestApp_LoginBootstrapsAndRemembersUser(t *testing.T) {
	capturePrint(t)
	stubPassword(t, "secret")
	a, panel, _ := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.Login(ctx, []string{"admin"}))

	f := panel.form("login")
	assert.Equal(t, "admin", f.Get("user"))
	assert.Equal(t, "secret", f.Get("pass"))
	for _, action := range []string{"load", "nodeMode", "nodes", "nodeTokens", "apiKeys", "webhookConfig"} {
		assert.True(t, panel.seen(action), action)
	}
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(admin master)", a.getStatus())
	assert.Equal(t, "admin", a.prefs.LastUser(ctx))
	assert.Len(t, a.store.Mirror().Clients(), 1)

	require.NoError(t, a.Logout(ctx, nil))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.store.Mirror().Clients())
	assert.True(t, panel.seen("logout"))
}

func TestApp_LoginPromptsWithRememberedUser(t *testing.T) {
	capturePrint(t)
	stubPassword(t, "pw")
	a, panel, _ := newTestApp(t, "\n")
	ctx := context.Background()
	require.True(t, a.prefs.RememberUser(ctx, "root"))

	require.NoError(t, a.Login(ctx, nil))
	assert.Equal(t, "root", panel.form("login").Get("user"))
}

func TestApp_SaveParsesInitUsersAndJSON(t *testing.T) {
	capturePrint(t)
	a, panel, rec := newTestApp(t, "")

	err := a.Save(context.Background(), []string{"clients", "new", "3,4", `{"name":`, `"dave",`, `"id":`, `0}`})
	require.NoError(t, err)

	f := panel.form("save")
	assert.Equal(t, "clients", f.Get("object"))
	assert.Equal(t, "new", f.Get("action"))
	assert.Equal(t, "3,4", f.Get("initUsers"))
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(f.Get("data")), &sent))
	assert.Equal(t, "dave", sent["name"])

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Add Client", last.Message)
}

func TestApp_SaveReadsMultilinePayload(t *testing.T) {
	capturePrint(t)
	a, panel, _ := newTestApp(t, "{\n  \"id\": 1\n}\n\n")

	require.NoError(t, a.Save(context.Background(), []string{"tls", "del"}))
	assert.JSONEq(t, `{"id": 1}`, panel.form("save").Get("data"))
	assert.False(t, panel.form("save").Has("initUsers"))
}

func TestApp_ArgumentErrors(t *testing.T) {
	capturePrint(t)
	a, _, _ := newTestApp(t, "")
	ctx := context.Background()

	assert.ErrorIs(t, a.Save(ctx, []string{"clients"}), errUsage)
	assert.Error(t, a.Save(ctx, []string{"clients", "new", "x,y"}))
	assert.Error(t, a.Save(ctx, []string{"clients", "new", "{bad"}))
	assert.ErrorIs(t, a.Show(ctx, []string{"bogus"}), errUsage)
	assert.ErrorIs(t, a.CheckTag(ctx, []string{"inbound"}), errUsage)
	assert.Error(t, a.SetKey(ctx, []string{"1", "ci", "maybe"}))
	assert.Error(t, a.DelKey(ctx, []string{"-1"}))
	assert.Error(t, a.GenToken(ctx, []string{"edge", "soon"}))
}

func TestApp_ShowAndChecks(t *testing.T) {
	out := capturePrint(t)
	a, _, rec := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, a.Refresh(ctx, nil))

	require.NoError(t, a.Show(ctx, []string{"clients"}))
	assert.Contains(t, strings.Join(*out, "\n"), `"name": "bob"`)

	require.NoError(t, a.CheckName(ctx, []string{"0", "bob"}))
	assert.Equal(t, "duplicate", (*out)[len(*out)-1])
	last, _ := rec.Last()
	assert.Equal(t, "Duplicate data: Name", last.Message)

	require.NoError(t, a.CheckName(ctx, []string{"5", "bob"}))
	assert.Equal(t, "ok", (*out)[len(*out)-1])

	require.NoError(t, a.CheckTag(ctx, []string{"inbound", "0", "in-1"}))
	assert.Equal(t, "duplicate", (*out)[len(*out)-1])

	require.NoError(t, a.CheckNames(ctx, []string{"x,x"}))
	assert.Equal(t, "duplicate", (*out)[len(*out)-1])
}

func TestApp_APIKeyCommands(t *testing.T) {
	capturePrint(t)
	a, panel, _ := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.SetKey(ctx, []string{"1", "ci", "false"}))
	f := panel.form("updateApiKey")
	assert.Equal(t, "1", f.Get("id"))
	assert.Equal(t, "false", f.Get("enable"))
	assert.Len(t, a.store.Mirror().APIKeys(), 1)

	require.NoError(t, a.NewKey(ctx, []string{"nightly", "backup"}))
	assert.Equal(t, "nightly backup", panel.form("createApiKey").Get("name"))
}

func TestApp_ReloadItemsAndRefreshOnce(t *testing.T) {
	out := capturePrint(t)
	a, panel, _ := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.ReloadItems(ctx, []string{"apiKeys,webhook"}))
	require.NoError(t, a.ReloadItems(ctx, nil))
	assert.Equal(t, "Reload items: apiKeys,webhook", (*out)[len(*out)-1])

	a.refreshOnce(ctx)
	assert.True(t, panel.seen("load"))
	assert.True(t, panel.seen("apiKeys"))
	assert.True(t, panel.seen("webhookConfig"))
	assert.False(t, panel.seen("nodes"))
}

func TestApp_SyncNodeIsInformational(t *testing.T) {
	capturePrint(t)
	a, panel, rec := newTestApp(t, "")

	require.NoError(t, a.SyncNode(context.Background(), []string{"2"}))
	assert.False(t, panel.seen("save"))
	last, _ := rec.Last()
	assert.Equal(t, notify.LevelInfo, last.Level)
}

func TestApp_TokenConfiguredCountsAsLoggedIn(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.getStatus())

	a.config.Token = "tok"
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(standalone)", a.getStatus())
}

func TestApp_REPLSaveKeepsPayloadWhitespace(t *testing.T) {
	capturePrint(t)
	line := "save  clients\tnew {\"name\":\"a    b\",\"remark\":\"x  y\"}\nexit\n"
	a, panel, _ := newTestApp(t, line)
	a.loggedIn = true

	runREPL(context.Background(), a, a.getStatus, a.reader)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(panel.form("save").Get("data")), &sent))
	assert.Equal(t, "a    b", sent["name"])
	assert.Equal(t, "x  y", sent["remark"])
}

func TestApp_SaveStopsOnDuplicate(t *testing.T) {
	capturePrint(t)
	a, panel, rec := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, a.Refresh(ctx, nil))

	tests := []struct {
		name string
		args []string
	}{
		{"new client", []string{"clients", "new", `{"name":"bob"}`}},
		{"renamed client", []string{"clients", "edit", `{"id":7,"name":"bob"}`}},
		{"bulk", []string{"clients", "addbulk", `[{"name":"carol"},{"name":"bob"}]`}},
		{"inbound tag", []string{"inbounds", "new", `{"tag":"in-1"}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, a.Save(ctx, tt.args), errDuplicate)
			assert.False(t, panel.seen("save"))
			last, _ := rec.Last()
			assert.Equal(t, notify.LevelError, last.Level)
		})
	}
}

func TestApp_SavePassesUniqueAndUnchecked(t *testing.T) {
	capturePrint(t)
	a, panel, _ := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, a.Refresh(ctx, nil))

	require.NoError(t, a.Save(ctx, []string{"clients", "edit", `{"id":5,"name":"bob"}`}))
	assert.True(t, panel.seen("save"))

	require.NoError(t, a.Save(ctx, []string{"inbounds", "edit", `{"id":1,"tag":"in-1"}`}))
	require.NoError(t, a.Save(ctx, []string{"clients", "del", `{"id":5,"name":"bob"}`}))
	require.NoError(t, a.Save(ctx, []string{"tls", "new", `{"name":"bob"}`}))
}

func TestApp_PrefsListAndClear(t *testing.T) {
	out := capturePrint(t)
	a, _, _ := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.ReloadItems(ctx, []string{"nodes"}))
	require.True(t, a.prefs.RememberUser(ctx, "admin"))

	require.NoError(t, a.Prefs(ctx, nil))
	assert.Contains(t, *out, "reloadItems=nodes")
	assert.Contains(t, *out, "username=admin")

	require.NoError(t, a.ReloadItems(ctx, []string{"clear"}))
	assert.Equal(t, []string{}, a.prefs.ReloadItems(ctx))

	require.NoError(t, a.Prefs(ctx, []string{"clear"}))
	assert.Equal(t, "", a.prefs.LastUser(ctx))
	assert.ErrorIs(t, a.Prefs(ctx, []string{"bogus"}), errUsage)
}

func TestApp_LogoutStopsWatcherBeforeReset(t *testing.T) {
	capturePrint(t)
	a, panel, _ := newTestApp(t, "")
	ctx := context.Background()
	a.loggedIn = true
	a.config.RefreshInterval = time.Millisecond

	a.startRefreshWatcher(ctx)
	require.Eventually(t, func() bool { return panel.seen("load") }, time.Second, time.Millisecond)

	require.NoError(t, a.Logout(ctx, nil))
	assert.Nil(t, a.watchDone)
	n := panel.count()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, panel.count())
	assert.Zero(t, a.store.Mirror().LastLoad())
	assert.Empty(t, a.store.Mirror().Clients())
}
