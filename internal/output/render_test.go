package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/guiyumin/linkparse/internal/config"
	"github.com/guiyumin/linkparse/internal/linkparser"
	"github.com/guiyumin/linkparse/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []scan.Result {
	return []scan.Result{
		{Index: 0, URL: "https://github.com/alice/my-repo", Link: linkparser.Link{Service: "github", ID: "alice/my-repo"}, OK: true},
		{Index: 1, URL: "https://example.com/alice/repo"},
		{Index: 2, URL: "https://stackoverflow.com/questions/12345/how-to-foo", Link: linkparser.Link{Service: "stackoverflow", ID: "12345"}, OK: true},
	}
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatText, sampleResults()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "github "))
	assert.Contains(t, lines[0], "alice/my-repo")
	assert.True(t, strings.HasPrefix(lines[1], "unrecognized"))
	assert.Contains(t, lines[1], "https://example.com/alice/repo")
	assert.Contains(t, lines[2], "12345")

	// Plain buffer gets no ANSI escapes
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatTable, sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "SERVICE")
	assert.Contains(t, out, "alice/my-repo")
	assert.Contains(t, out, "unrecognized")
	assert.Contains(t, out, "stackoverflow")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatJSON, sampleResults()))

	var got []record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, record{URL: "https://github.com/alice/my-repo", Recognized: true, Service: "github", ID: "alice/my-repo"}, got[0])
	assert.Equal(t, record{URL: "https://example.com/alice/repo"}, got[1])
	assert.NotContains(t, buf.String(), `"service": ""`)
}

func TestRender_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRender_IDs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatID, sampleResults()))
	assert.Equal(t, "alice/my-repo\n\n12345\n", buf.String())
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, "xml", sampleResults())
	assert.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, scan.Summarize(sampleResults())))

	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Regexp(t, `total\s+3`, out)
	assert.Regexp(t, `github\s+1`, out)
	assert.Regexp(t, `stackoverflow\s+1`, out)
	assert.Regexp(t, `unrecognized\s+1`, out)
}
