package wallpaper

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls   []call
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	sub := args[0]
	if err := f.errs[sub]; err != nil {
		return nil, err
	}
	return []byte(f.outputs[sub]), nil
}

func TestGSettingsSetWallpaper(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"list-schemas": "org.gnome.desktop.interface\norg.gnome.desktop.background\n",
		"list-keys":    "picture-opacity\npicture-uri\nprimary-color\npicture-uri-dark\n",
	}}
	path := existingFile(t)

	err := NewSetter(NewGSettingsWithRunner(runner.run), Options{}).Set(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, runner.calls, 4)
	assert.Equal(t, []string{"list-keys", DefaultSchema}, runner.calls[1].args)
	assert.Equal(t, []string{"set", DefaultSchema, KeyPicture, "'file://" + path + "'"}, runner.calls[2].args)
	assert.Equal(t, []string{"set", DefaultSchema, KeyPictureDark, "'file://" + path + "'"}, runner.calls[3].args)
	for _, c := range runner.calls {
		assert.Equal(t, "gsettings", c.name)
	}
}

func TestGSettingsUnknownSchema(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"list-schemas": "org.gnome.desktop.interface\n",
	}}

	_, err := NewGSettingsWithRunner(runner.run).Open(context.Background(), DefaultSchema)
	require.ErrorIs(t, err, ErrSchemaNotFound)
}

func TestGSettingsMissingBinary(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"list-schemas": errors.New(`exec: "gsettings": executable file not found in $PATH`),
	}}

	err := NewSetter(NewGSettingsWithRunner(runner.run), Options{}).Set(context.Background(), existingFile(t))
	require.ErrorIs(t, err, ErrOpenSettings)
	assert.True(t, strings.Contains(err.Error(), "executable file not found"))
}

func TestGSettingsWriteFailure(t *testing.T) {
	runner := &fakeRunner{
		outputs: map[string]string{
			"list-schemas": DefaultSchema + "\n",
			"list-keys":    "picture-uri\npicture-uri-dark\n",
		},
		errs: map[string]error{"set": errors.New("exit status 1")},
	}

	err := NewSetter(NewGSettingsWithRunner(runner.run), Options{}).Set(context.Background(), existingFile(t))
	require.ErrorIs(t, err, ErrSetWallpaper)
	assert.Len(t, runner.calls, 3, "writing must stop at the first failed key")
}

func TestQuoteGVariantString(t *testing.T) {
	assert.Equal(t, `'file:///a/b.png'`, quoteGVariantString("file:///a/b.png"))
	assert.Equal(t, `'it\'s'`, quoteGVariantString("it's"))
	assert.Equal(t, `'a\\b'`, quoteGVariantString(`a\b`))
	assert.Equal(t, `''`, quoteGVariantString(""))
}

func TestExecRunnerReportsStderr(t *testing.T) {
	_, err := execRunner(context.Background(), "sh", "-c", "echo nope >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
	assert.Contains(t, err.Error(), "exit status 3")
}
