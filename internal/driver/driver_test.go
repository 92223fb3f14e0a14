package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"minijson/internal/cache"
	"minijson/internal/diag"
	"minijson/internal/driver"
	"minijson/internal/lexer"
	"minijson/internal/observ"
	"minijson/internal/parser"
	"minijson/internal/source"
	"minijson/internal/token"
	"minijson/internal/value"
)

const canonical = "{\n\t\"a\": 1,\n\t\"b\": {\n\t\t\"c\": \"x\"\n\t}\n}\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type recordingSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (s *recordingSink) OnEvent(ev driver.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.json", `{"a": 1}`)
	res, err := driver.Tokenize(context.Background(), path, driver.Options{})
	require.NoError(t, err)
	require.Len(t, res.Tokens, 5)
	require.Equal(t, token.Number, res.Tokens[3].Kind)
	require.Zero(t, res.Bag.Len())
}

func TestTokenizeLexError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.json", `{"a": #}`)
	res, err := driver.Tokenize(context.Background(), path, driver.Options{})
	require.ErrorIs(t, err, lexer.ErrUnknownCharacter)
	require.NotNil(t, res)
	require.Equal(t, 1, res.Bag.Len())
	require.Equal(t, diag.LexUnknownChar, res.Bag.Items()[0].Code)
}

func TestParseMissingFile(t *testing.T) {
	res, err := driver.Parse(context.Background(), filepath.Join(t.TempDir(), "nope.json"), driver.Options{})
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Nil(t, res)
}

func TestParseRecordsTimings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.json", canonical)
	timer := observ.NewTimer()
	res, err := driver.Parse(context.Background(), path, driver.Options{Timer: timer})
	require.NoError(t, err)
	require.Equal(t, 2, value.Depth(res.Root))

	var names []string
	for _, p := range timer.Phases() {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"load", "lex", "parse"}, names)
}

func TestParseErrorsBecomeDiagnostics(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		input string
		code  diag.Code
	}{
		{`{"a" 1}`, diag.SynMissingColon},
		{`{"a": "x"`, diag.SynUnbalancedBraces},
		{`{"a": 1 "b": 2}`, diag.SynUnexpectedToken},
		{`{"a": "x}`, diag.LexUnterminatedString},
	}
	for _, tc := range cases {
		path := writeFile(t, dir, "case.json", tc.input)
		res, err := driver.Parse(context.Background(), path, driver.Options{})
		require.Error(t, err, tc.input)
		require.NotNil(t, res)
		require.Nil(t, res.Root)
		require.True(t, res.Bag.HasErrors())
		require.Equal(t, tc.code, res.Bag.Items()[0].Code, tc.input)
	}
}

func TestParseKeepsBytesVerbatim(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "crlf.json", "{\"a\": \"x\r\ny\"}")
	res, err := driver.Parse(context.Background(), path, driver.Options{})
	require.NoError(t, err)
	require.Equal(t, value.NewRoot(value.NewString("a", "x\r\ny")), res.Root)

	path = writeFile(t, dir, "bom.json", "\xEF\xBB\xBF{\"a\": 1}")
	res, err = driver.Parse(context.Background(), path, driver.Options{})
	require.ErrorIs(t, err, lexer.ErrUnknownCharacter)
	require.NotNil(t, res)
	require.Nil(t, res.Root)
	require.Equal(t, diag.LexUnknownChar, res.Bag.Items()[0].Code)
}

func TestParseDecodeText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bom.json", "\xEF\xBB\xBF{\r\n\t\"a\": 1\r\n}")
	res, err := driver.Parse(context.Background(), path, driver.Options{DecodeText: true})
	require.NoError(t, err)
	require.NotZero(t, res.File.Flags&source.FileHadBOM)
	require.NotZero(t, res.File.Flags&source.FileNormalizedCRLF)
	require.Equal(t, value.NewRoot(value.NewInt("a", 1)), res.Root)
}

func TestParseMaxDepth(t *testing.T) {
	path := writeFile(t, t.TempDir(), "deep.json", `{"a": {"b": {}}}`)
	_, err := driver.Parse(context.Background(), path, driver.Options{MaxDepth: 2})
	require.ErrorIs(t, err, parser.ErrTooDeep)

	res, err := driver.Parse(context.Background(), path, driver.Options{MaxDepth: 3})
	require.NoError(t, err)
	require.NotNil(t, res.Root)
}

func TestParseUsesCache(t *testing.T) {
	c, err := cache.Open(t.TempDir())
	require.NoError(t, err)
	path := writeFile(t, t.TempDir(), "a.json", canonical)
	opts := driver.Options{Cache: c}

	first, err := driver.Parse(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.NotEmpty(t, first.Tokens)

	second, err := driver.Parse(context.Background(), path, opts)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Nil(t, second.Tokens)
	require.True(t, value.Equal(first.Root, second.Root))

	// другой лимит глубины означает другой ключ
	third, err := driver.Parse(context.Background(), path, driver.Options{Cache: c, MaxDepth: 8})
	require.NoError(t, err)
	require.False(t, third.Cached)
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := driver.Parse(ctx, "whatever.json", driver.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"b": 2}`)
	writeFile(t, dir, "a.json", `{"a": 1}`)
	writeFile(t, dir, "nested/c.json", `{"c" 3}`)
	writeFile(t, dir, "notes.txt", "ignored")

	sink := &recordingSink{}
	fs, results, err := driver.ParseDir(context.Background(), dir, driver.Options{Jobs: 2, Progress: sink})
	require.NoError(t, err)
	require.NotNil(t, fs)
	require.Len(t, results, 3)

	require.Equal(t, filepath.Join(dir, "a.json"), results[0].Path)
	require.Equal(t, filepath.Join(dir, "b.json"), results[1].Path)
	require.Equal(t, filepath.Join(dir, "nested", "c.json"), results[2].Path)

	require.NoError(t, results[0].Err)
	require.Equal(t, value.NewRoot(value.NewInt("a", 1)), results[0].Root)
	require.ErrorIs(t, results[2].Err, parser.ErrMissingColon)
	require.Equal(t, diag.SynMissingColon, results[2].Bag.Items()[0].Code)

	summary := driver.Summarize(results)
	require.Equal(t, driver.Summary{Files: 3, Failed: 1, Values: 2}, summary)

	final := map[string]driver.Status{}
	for _, ev := range sink.events {
		final[ev.File] = ev.Status
	}
	require.Equal(t, driver.StatusDone, final[results[0].Path])
	require.Equal(t, driver.StatusError, final[results[2].Path])
}

func TestParseDirEmpty(t *testing.T) {
	_, results, err := driver.ParseDir(context.Background(), t.TempDir(), driver.Options{})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestParseDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := driver.ParseDir(ctx, dir, driver.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormat(t *testing.T) {
	dir := t.TempDir()

	res, err := driver.Format(context.Background(), writeFile(t, dir, "ok.json", canonical), driver.Options{})
	require.NoError(t, err)
	require.False(t, res.Changed)
	require.Equal(t, canonical, res.Formatted)

	messy := `{"a":1,"b":{"c":"x"}}`
	res, err = driver.Format(context.Background(), writeFile(t, dir, "messy.json", messy), driver.Options{})
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, canonical, res.Formatted)

	d := res.NotCanonical()
	require.Equal(t, diag.FmtNotCanonical, d.Code)
	require.True(t, d.Located)
	require.Equal(t, uint32(1), d.Primary.Start)

	require.NoError(t, driver.WriteFormatted(context.Background(), res))
	data, err := os.ReadFile(res.File.Path)
	require.NoError(t, err)
	require.Equal(t, canonical, string(data))
}

func TestFormatCRLFIsChanged(t *testing.T) {
	path := writeFile(t, t.TempDir(), "crlf.json", "{\r\n\t\"a\": 1\r\n}\r\n")

	res, err := driver.Format(context.Background(), path, driver.Options{})
	require.NoError(t, err)
	require.Equal(t, "{\n\t\"a\": 1\n}\n", res.Formatted)
	require.NotEqual(t, res.Original, res.Formatted)
	require.True(t, res.Changed)

	res, err = driver.Format(context.Background(), path, driver.Options{DecodeText: true})
	require.NoError(t, err)
	require.Equal(t, res.Original, res.Formatted)
	require.True(t, res.Changed)
}

func TestFormatParseError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.json", `{"a": }`)
	res, err := driver.Format(context.Background(), path, driver.Options{})
	require.Error(t, err)
	require.NotNil(t, res)
	require.Empty(t, res.Formatted)
}
