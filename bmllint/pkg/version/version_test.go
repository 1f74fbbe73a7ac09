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
	"bytes"
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "release",
			info: Info{Module: "example.com/bmllint", Version: "v1.2.0", Revision: "abc123"},
			want: "Module: example.com/bmllint\nVersion: v1.2.0\nGit SHA: abc123\n",
		},
		{
			name: "modified",
			info: Info{Version: "dev", Revision: "abc123", Modified: true},
			want: "Version: dev\nGit SHA: abc123 (modified)\n",
		},
		{
			name: "no vcs",
			info: Info{Version: "dev"},
			want: "Version: dev\nGit SHA: unknown\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.info, false); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Write() = %q, want %q", got, tt.want)
			}
		})
	}

	var buf bytes.Buffer
	if err := Write(&buf, Info{Version: "v1"}, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", buf.String())
	}
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{info: Info{Version: "v1"}, want: "v1"},
		{info: Info{Version: "dev", Revision: "abc"}, want: "dev+abc"},
		{info: Info{Version: "dev", Revision: "abc", Modified: true}, want: "dev+abc+modified"},
	}
	for _, tt := range tests {
		if got := tt.info.CacheKey(); got != tt.want {
			t.Errorf("CacheKey(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestGet(t *testing.T) {
	if Get().Version == "" {
		t.Error("Get() returned an empty version")
	}
}
