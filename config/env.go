package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Global flags.
var Verbose = GBool("verbose", "V", false, "Enable verbose logging")
var Dumb = GBool("dumb", "D", IsTermDumb(), "Disable colors and complex output")
var EnvName = GString("env", "E", "", "Environment name, used for keeping separate configurations")
var HostsFile = GString("file", "f", "", "Hosts file to manage (defaults to the configured or system hosts file)")
var LogFile = GString("log-file", "", "", "Also write logs to this file, relative names are placed in the log directory")
var _ = GString("cwd", "C", "", "Sets the working directory before running the command")

var cache = sync.Map{}

func mkdironce(dir string) {
	if _, loaded := cache.LoadOrStore(dir, true); !loaded {
		os.MkdirAll(dir, 0755)
	}
}

// Home directory.
func Home() (home string) {
	userDir, _ := os.UserHomeDir()
	if *EnvName == "" {
		home = filepath.Join(userDir, ".hostsfile")
	} else if filepath.IsAbs(*EnvName) {
		home = *EnvName
	} else {
		home = filepath.Join(userDir, ".hostsfile-"+*EnvName)
	}
	mkdironce(home)
	return
}

// Subdirectories.
type Subdir string

const (
	LogDir Subdir = "log"
)

func (s Subdir) Path() string {
	path := filepath.Join(Home(), string(s))
	mkdironce(path)
	return path
}
func (s Subdir) File(name string) string {
	return filepath.Join(s.Path(), name)
}

// Global from either environment or command line.
var RootCommand = &cobra.Command{
	Use:           "hostsfile",
	Short:         "hostsfile idempotently manages the entries of the system hosts file.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flag("cwd").Changed {
			err = os.Chdir(cmd.Flag("cwd").Value.String())
		}
		return
	},
}

func getenv(name string) (string, bool) {
	name = strings.ToUpper(name)
	name = strings.ReplaceAll(name, "-", "_")
	return os.LookupEnv("HF_" + name)
}
func GString(name, shorthand string, value string, usage string) *string {
	flags := RootCommand.PersistentFlags()
	if env, ok := getenv(name); ok {
		value = env
	}
	flags.StringVarP(&value, name, shorthand, value, usage)
	return &value
}
func GBool(name, shorthand string, value bool, usage string) *bool {
	flags := RootCommand.PersistentFlags()
	if env, ok := getenv(name); ok {
		if v, e := strconv.ParseBool(env); e == nil {
			value = v
		}
	}
	flags.BoolVarP(&value, name, shorthand, value, usage)
	return &value
}

// Utils.
func IsTermDumb() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return true
	}

	isTrue := map[string]bool{
		"1": true, "t": true, "y": true,
		"true": true, "yes": true, "on": true,
		"0": false, "f": false, "n": false,
		"false": false, "no": false, "off": false,
	}
	envs := []string{"HF_NON_INTERACTIVE", "CI", "DEBIAN_FRONTEND", "NON_INTERACTIVE"}
	for _, env := range envs {
		if v, ok := os.LookupEnv(env); ok {
			if b, ok := isTrue[strings.ToLower(v)]; ok {
				return b
			}
		}
	}
	return false
}
