package revision

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	VersionString = "v0.1" // Only updated for major/minor releases.
)

func getCommit() (commit string, dirty bool) {
	commit = "00000000"
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if len(setting.Value) > 8 {
					commit = setting.Value[:8]
				}
			case "vcs.modified":
				dirty = setting.Value == "true"
			}
		}
	}
	return
}

var GetVersion = sync.OnceValue(func() string {
	commit, dirty := getCommit()
	if dirty {
		commit += "+dirty"
	}
	return fmt.Sprintf("%s-%s", VersionString, commit)
})
