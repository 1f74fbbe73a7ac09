// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/fatih/color"
)

// Version can be overridden at build time via -ldflags.
var Version = ""

// Info describes the running binary.
type Info struct {
	Module   string
	Version  string
	Revision string
	Modified bool
}

// Get reads the build information of the running binary.
func Get() Info {
	i := Info{Version: Version}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		if i.Version == "" {
			i.Version = "dev"
		}
		return i
	}

	i.Module = info.Main.Path
	if i.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		i.Version = info.Main.Version
	}
	if i.Version == "" {
		i.Version = "dev"
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			i.Revision = setting.Value
		case "vcs.modified":
			i.Modified = setting.Value == "true"
		}
	}
	return i
}

// CacheKey changes whenever the binary could produce different results.
func (i Info) CacheKey() string {
	key := i.Version
	if i.Revision != "" {
		key += "+" + i.Revision
	}
	if i.Modified {
		key += "+modified"
	}
	return key
}

var (
	labelColor   = color.New(color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
	dirtyColor   = color.New(color.FgYellow)
)

// Write prints the version information.
func Write(w io.Writer, i Info, colored bool) error {
	for _, c := range []*color.Color{labelColor, versionColor, dirtyColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if i.Module != "" {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Module:"), i.Module)
	}
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Version:"), versionColor.Sprint(i.Version))

	sha := "unknown"
	if i.Revision != "" {
		sha = i.Revision
		if i.Modified {
			sha += " " + dirtyColor.Sprint("(modified)")
		}
	}
	_, err := fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Git SHA:"), sha)
	return err
}
