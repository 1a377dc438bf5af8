package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guiyumin/linkparse/internal/config"
	"github.com/guiyumin/linkparse/internal/webdav"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebdav "golang.org/x/net/webdav"
)

// isolate gives the test its own config dir
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"LINKPARSE_FORMAT", "LINKPARSE_LOG_LEVEL", "LINKPARSE_LOG_FORMAT", "LINKPARSE_WORKERS"} {
		t.Setenv(key, "")
	}
}

func resetFlags() {
	format = ""
	strict = false
	verbose = false
	configFile = ""
	scanHTML = false
	scanWorkers = 0
	scanSummary = false
	scanNoProgress = false
	webdavURL = ""
	webdavUsername = ""
	cfg = config.DefaultConfig()
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRoot_Classify(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "https://github.com/alice/my-repo", "https://example.com/alice/repo")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "github")
	assert.Contains(t, lines[0], "alice/my-repo")
	assert.Contains(t, lines[1], "unrecognized")
}

func TestRoot_IDFormat(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "-f", "id",
		"http://github.com/bob/tool-x",
		"https://stackoverflow.com/questions/12345",
		"https://stackoverflow.com/questions/12345/how-to-foo",
	)
	require.NoError(t, err)
	assert.Equal(t, "bob/tool-x\n\n12345\n", out)
}

func TestRoot_Strict(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "--strict", "-f", "id", "https://github.com/a/b")
	require.NoError(t, err)

	_, _, err = execute(t, "", "--strict", "-f", "id", "https://github.com/a/b", "nope")
	assert.ErrorIs(t, err, errUnrecognized)
}

func TestRoot_InvalidFormat(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "-f", "xml", "https://github.com/a/b")
	assert.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestRoot_ConfigFormatDefault(t *testing.T) {
	isolate(t)
	c := config.DefaultConfig()
	c.Format = config.FormatID
	require.NoError(t, config.Save(c))

	out, _, err := execute(t, "", "https://github.com/a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b\n", out)
}

func TestRoot_MissingConfigFile(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yml"), "https://github.com/a/b")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan_Stdin(t *testing.T) {
	isolate(t)

	stdin := "# links\nhttps://github.com/alice/my-repo\n\nhttps://example.com\n"
	out, _, err := execute(t, stdin, "scan", "-", "-f", "json", "--no-progress")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "alice/my-repo", records[0]["id"])
	assert.Equal(t, true, records[0]["recognized"])
	assert.Equal(t, false, records[1]["recognized"])
}

func TestScan_HTMLWithSummary(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "bookmarks.html")
	html := `<ul>
<li><a href="https://github.com/alice/my-repo">repo</a></li>
<li><a href="https://stackoverflow.com/questions/12345/how-to-foo">q</a></li>
<li><a href="https://example.com">other</a></li>
</ul>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))

	out, errOut, err := execute(t, "", "scan", path, "-f", "id", "-w", "2", "--summary")
	require.NoError(t, err)
	assert.Equal(t, "alice/my-repo\n12345\n\n", out)
	assert.Contains(t, errOut, "Summary")
	assert.Regexp(t, `github\s+1`, errOut)
}

func TestScan_MissingInput(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "scan", filepath.Join(t.TempDir(), "none.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestServices(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "services")
	require.NoError(t, err)
	assert.Contains(t, out, "1. github")
	assert.Contains(t, out, "2. stackoverflow")
	assert.Less(t, strings.Index(out, "github"), strings.Index(out, "stackoverflow"))
}

func TestConfigWebdav_Lifecycle(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "config", "webdav", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No WebDAV servers configured.")

	out, _, err = execute(t, "secret\n", "config", "webdav", "add", "NAS", "--url", "https://nas.local/dav", "--user", "me")
	require.NoError(t, err)
	assert.Contains(t, out, "WebDAV server 'nas' added.")

	saved, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, saved.GetWebDAVServer("nas"))
	assert.Equal(t, "secret", saved.GetWebDAVServer("nas").Password)

	out, _, err = execute(t, "", "config", "webdav", "show", "nas")
	require.NoError(t, err)
	assert.Contains(t, out, "https://nas.local/dav")
	assert.Contains(t, out, "Password: ******")
	assert.NotContains(t, out, "secret")

	_, _, err = execute(t, "", "config", "webdav", "add", "nas", "--url", "https://other")
	assert.Error(t, err)

	out, _, err = execute(t, "", "config", "webdav", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "nas: https://nas.local/dav (user: me)")

	out, _, err = execute(t, "", "config", "webdav", "rm", "nas")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, _, err = execute(t, "", "config", "webdav", "show", "nas")
	assert.Error(t, err)
}

func TestConfigWebdav_AddRejectsDriveLetter(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "config", "webdav", "add", "C", "--url", "https://nas.local/dav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
	assert.False(t, config.Exists())
}

// newDAVServer serves /lists/links.txt from an in-memory WebDAV tree
func newDAVServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	fs := xwebdav.NewMemFS()
	require.NoError(t, fs.Mkdir(ctx, "/lists", 0o755))
	f, err := fs.OpenFile(ctx, "/lists/links.txt", os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	srv := httptest.NewServer(&xwebdav.Handler{FileSystem: fs, LockSystem: xwebdav.NewMemLS()})
	t.Cleanup(srv.Close)
	return srv
}

func TestScan_Remote(t *testing.T) {
	isolate(t)
	srv := newDAVServer(t, "https://github.com/alice/repo\nhttps://example.com\n")

	_, _, err := execute(t, "", "config", "webdav", "add", "NAS", "--url", srv.URL)
	require.NoError(t, err)

	for _, input := range []string{"nas:/lists/links.txt", "NAS:/lists/links.txt"} {
		t.Run(input, func(t *testing.T) {
			out, _, err := execute(t, "", "scan", input, "-f", "id", "--no-progress")
			require.NoError(t, err)
			assert.Equal(t, "alice/repo\n\n", out)
		})
	}

	_, _, err = execute(t, "", "scan", "other:/lists/links.txt", "--no-progress")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown WebDAV remote "other"`)
}

func TestCompleteRemotes_IgnoresCase(t *testing.T) {
	isolate(t)
	c := config.DefaultConfig()
	c.SetWebDAVServer("nas", config.WebDAVServer{URL: "https://nas.local/dav"})
	require.NoError(t, config.Save(c))

	got, directive := completeRemotes("NA")
	assert.Equal(t, []string{"nas:"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoSpace, directive)

	got, directive = completeRemotes("zz")
	assert.Empty(t, got)
	assert.Equal(t, cobra.ShellCompDirectiveDefault, directive)
}

func TestCompleteRemoteFiles_KeepsTypedName(t *testing.T) {
	isolate(t)
	srv := newDAVServer(t, "")
	c := config.DefaultConfig()
	c.SetWebDAVServer("nas", config.WebDAVServer{URL: srv.URL})
	require.NoError(t, config.Save(c))

	got, directive := completeRemoteFiles("NAS:/lists/li")
	assert.Equal(t, cobra.ShellCompDirectiveNoSpace, directive)
	assert.Equal(t, []string{"NAS:/lists/links.txt"}, got)
}

func TestConfigWebdav_AddPrompts(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "https://nas.local/dav\n\n", "config", "webdav", "add", "nas")
	require.NoError(t, err)
	assert.Contains(t, out, "WebDAV URL: ")

	saved, err := config.Load()
	require.NoError(t, err)
	server := saved.GetWebDAVServer("nas")
	require.NotNil(t, server)
	assert.Empty(t, server.Username)
}

func TestConfigPathAndShow(t *testing.T) {
	isolate(t)
	custom := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(custom, []byte("format: table\nworkers: 3\n"), 0o600))

	out, _, err := execute(t, "", "--config", custom, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, custom+"\n", out)

	out, _, err = execute(t, "", "--config", custom, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Format:    table")
	assert.Contains(t, out, "Workers:   3")
}

func TestRemoteCompletions(t *testing.T) {
	files := []webdav.FileInfo{
		{Name: "links.txt"},
		{Name: "lists", IsDir: true},
		{Name: "other.html"},
	}

	got := remoteCompletions("nas", "/", "li", files)
	assert.Equal(t, []string{"nas:/links.txt", "nas:/lists/"}, got)

	got = remoteCompletions("nas", "/exports", "", files[:1])
	assert.Equal(t, []string{"nas:/exports/links.txt"}, got)
}
