package hosts

import (
	"os"
	"path/filepath"
	"runtime"
)

// SystemPath returns the platform hosts file location.
func SystemPath() string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("SystemRoot")
		if root == "" {
			root = `C:\Windows`
		}
		return filepath.Join(root, "System32", "drivers", "etc", "hosts")
	}
	return "/etc/hosts"
}
