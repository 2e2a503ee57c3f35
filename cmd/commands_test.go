package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pme-sh/hostsfile/config"
	"github.com/pme-sh/hostsfile/hosts"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	home string
	path string
}

func newWorkspace(t *testing.T, content string) workspace {
	t.Helper()
	dir := t.TempDir()
	w := workspace{home: filepath.Join(dir, "home"), path: filepath.Join(dir, "hosts")}
	require.NoError(t, os.WriteFile(w.path, []byte(content), 0644))
	return w
}

// resetFlags restores every flag to its default, cobra keeps parsed values
// between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func (w workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := config.RootCommand
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--env", w.home, "--dumb"))
	config.Reset()
	defer func() {
		root.SetOut(nil)
		root.SetErr(nil)
		root.SetArgs(nil)
		resetFlags(root)
		config.Reset()
	}()
	err := root.Execute()
	return out.String(), err
}

func (w workspace) content(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(w.path)
	require.NoError(t, err)
	return string(data)
}

func TestEntryCommands(t *testing.T) {
	w := newWorkspace(t, "127.0.0.1 localhost\n")
	steps := []struct {
		name string
		args []string
		out  string
		file string
	}{
		{
			name: "add",
			args: []string{"add", "10.0.0.1", "router", "-a", "gw", "-c", "lab", "-p", "5"},
			out:  "updated " + w.path,
			file: "10.0.0.1\trouter gw # lab\n127.0.0.1\tlocalhost\n",
		},
		{
			name: "get",
			args: []string{"get", "10.0.0.1"},
			out:  "10.0.0.1\trouter gw # lab\n",
			file: "10.0.0.1\trouter gw # lab\n127.0.0.1\tlocalhost\n",
		},
		{
			name: "append",
			args: []string{"append", "10.0.0.1", "router", "--comment", "second"},
			out:  "updated " + w.path,
			file: "10.0.0.1\trouter gw # lab, second\n127.0.0.1\tlocalhost\n",
		},
		{
			name: "update",
			args: []string{"update", "10.0.0.1", "gateway"},
			out:  "updated " + w.path,
			file: "10.0.0.1\tgateway\n127.0.0.1\tlocalhost\n",
		},
		{
			name: "update absent",
			args: []string{"update", "10.9.9.9", "nowhere"},
			out:  "unchanged " + w.path,
			file: "10.0.0.1\tgateway\n127.0.0.1\tlocalhost\n",
		},
		{
			name: "dry run",
			args: []string{"add", "10.0.0.2", "extra", "--dry-run"},
			out:  "10.0.0.1\tgateway\n127.0.0.1\tlocalhost\n10.0.0.2\textra\n",
			file: "10.0.0.1\tgateway\n127.0.0.1\tlocalhost\n",
		},
		{
			name: "remove",
			args: []string{"remove", "10.0.0.1"},
			out:  "updated " + w.path,
			file: "127.0.0.1\tlocalhost\n",
		},
		{
			name: "remove absent",
			args: []string{"rm", "10.0.0.1"},
			out:  "unchanged " + w.path,
			file: "127.0.0.1\tlocalhost\n",
		},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			out, err := w.run(t, append(step.args, "--file", w.path)...)
			require.NoError(t, err)
			assert.Contains(t, out, step.out)
			assert.Equal(t, step.file, w.content(t))
		})
	}
}

func TestListCommand(t *testing.T) {
	w := newWorkspace(t, "127.0.0.1 localhost\n10.0.0.5 printer.local\n1.2.3.4 example.com api.example.com # web\n127.0.0.1 loopback\n")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "unique",
			want: "127.0.0.1\tlocalhost\t\t50\t\n10.0.0.5\tprinter.local\t\t50\t\n1.2.3.4\texample.com\tapi.example.com\t50\tweb\n",
		},
		{
			name: "all",
			args: []string{"--all"},
			want: "127.0.0.1\tlocalhost\t\t50\t\n10.0.0.5\tprinter.local\t\t50\t\n1.2.3.4\texample.com\tapi.example.com\t50\tweb\n127.0.0.1\tloopback\t\t50\t\n",
		},
		{
			name: "local",
			args: []string{"--local"},
			want: "127.0.0.1\tlocalhost\t\t50\t\n10.0.0.5\tprinter.local\t\t50\t\n",
		},
		{
			name: "domain",
			args: []string{"--domain", "example.com"},
			want: "1.2.3.4\texample.com\tapi.example.com\t50\tweb\n",
		},
		{
			name: "host",
			args: []string{"--host", "api.example.com"},
			want: "1.2.3.4\texample.com\tapi.example.com\t50\tweb\n",
		},
		{
			name: "raw",
			args: []string{"--raw"},
			want: "127.0.0.1\tlocalhost\n10.0.0.5\tprinter.local\n1.2.3.4\texample.com api.example.com # web\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := w.run(t, append(append([]string{"list"}, tt.args...), "--file", w.path)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("json", func(t *testing.T) {
		out, err := w.run(t, "list", "--json", "--local", "--file", w.path)
		require.NoError(t, err)
		var entries []hosts.Entry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, hosts.Entry{IPAddress: "10.0.0.5", Hostname: "printer.local", Priority: 50}, entries[1])
	})
}

func TestApplyCommand(t *testing.T) {
	w := newWorkspace(t, "127.0.0.1 localhost\n4.5.6.7 old\n")
	manifest := filepath.Join(t.TempDir(), "hosts.yml")
	require.NoError(t, os.WriteFile(manifest, []byte(
		"file: "+w.path+"\n"+
			"hosts:\n"+
			"  - '10.0.0.1 router # lab'\n"+
			"  - action: remove\n"+
			"    ip_address: 4.5.6.7\n",
	), 0644))

	out, err := w.run(t, "apply", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "updated "+w.path)
	assert.Equal(t, "127.0.0.1\tlocalhost\n10.0.0.1\trouter # lab\n", w.content(t))

	out, err = w.run(t, "apply", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged "+w.path, "applying twice converges")
}

func TestConfigCommands(t *testing.T) {
	w := newWorkspace(t, "127.0.0.1 localhost\n")

	_, err := w.run(t, "config", "set", "default-priority", "10")
	require.NoError(t, err)
	out, err := w.run(t, "config", "get", "default-priority")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)

	// Existing entries take the configured default, so 20 sorts after them.
	_, err = w.run(t, "add", "2.2.2.2", "two", "-p", "20", "--file", w.path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1\tlocalhost\n2.2.2.2\ttwo\n", w.content(t))

	_, err = w.run(t, "config", "set", "hosts-file", w.path)
	require.NoError(t, err)
	out, err = w.run(t, "config", "get", "hosts-file")
	require.NoError(t, err)
	assert.Equal(t, w.path+"\n", out)
	out, err = w.run(t, "get", "2.2.2.2")
	require.NoError(t, err, "the configured hosts file is used without --file")
	assert.Equal(t, "2.2.2.2\ttwo\n", out)

	_, err = w.run(t, "config", "set", "atomic-write", "false")
	require.NoError(t, err)
	out, err = w.run(t, "config", "get", "all", "--json")
	require.NoError(t, err)
	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &stored))
	assert.Equal(t, map[string]any{"default_priority": float64(10), "hosts_file": w.path, "atomic_write": false}, stored)

	_, err = w.run(t, "config", "set", "default-priority", "high")
	assert.Error(t, err)
}

func TestMissingHostsFile(t *testing.T) {
	w := newWorkspace(t, "")
	missing := filepath.Join(t.TempDir(), "hosts")
	for _, args := range [][]string{
		{"list"},
		{"get", "127.0.0.1"},
		{"add", "10.0.0.1", "router"},
		{"remove", "10.0.0.1"},
	} {
		_, err := w.run(t, append(args, "--file", missing)...)
		require.ErrorIs(t, err, hosts.ErrMissingTargetFile, args)
		assert.Regexp(t, "^fatal: ", errorMessage(err))
		_, statErr := os.Stat(missing)
		assert.True(t, os.IsNotExist(statErr), "the hosts file must not be created")
	}
}

func TestInvalidArguments(t *testing.T) {
	w := newWorkspace(t, "127.0.0.1 localhost\n")
	for _, args := range [][]string{
		{"add", "10.0.0.1", "bad host"},
		{"add", "10.0.0.1", "router", "-c", "one\ntwo"},
		{"append", "10.0.0.1", "router", "-a", "x#y"},
		{"update", "127.0.0.1", "#localhost"},
	} {
		_, err := w.run(t, append(args, "--file", w.path)...)
		assert.ErrorIs(t, err, hosts.ErrInvalidOptions, args)
		assert.Equal(t, "127.0.0.1 localhost\n", w.content(t), "rejected input leaves the file alone")
	}

	_, err := w.run(t, "get", "9.9.9.9", "--file", w.path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry for 9.9.9.9")
	assert.NotContains(t, errorMessage(err), "fatal")

	_, err = w.run(t, "add", "10.0.0.1", "--file", w.path)
	assert.Error(t, err)
}
