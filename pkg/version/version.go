package version

import (
	"encoding/json"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

var Version = func() string {
	type versionInfo struct {
		Commit   string `json:"commit"`
		Time     string `json:"time"`
		Modified bool   `json:"modified,omitempty"`
	}
	v := versionInfo{}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				v.Commit = setting.Value
			case "vcs.time":
				v.Time = setting.Value
			case "vcs.modified":
				v.Modified = setting.Value == "true"
			}
		}
	}
	b, err := json.Marshal(&v)
	if err != nil {
		logrus.Fatal(err)
	}

	return string(b)
}()
