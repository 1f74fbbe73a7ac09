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

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"syscall"
)

// FileMetadata is the stat fingerprint of a file plus the hash of its content.
type FileMetadata struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Mtime int64  `json:"mtime"` // Nanoseconds
	Inode uint64 `json:"inode"`
	Hash  string `json:"hash,omitempty"`
}

// sameFile reports whether both fingerprints describe the same file content.
func (m *FileMetadata) sameFile(other *FileMetadata) bool {
	return m.Size == other.Size && m.Mtime == other.Mtime && m.Inode == other.Inode
}

// GetMetadata retrieves the stat-based fingerprint of a file.
// Hash is left empty.
func GetMetadata(path string) (*FileMetadata, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}

	md := &FileMetadata{
		Path:  path,
		Size:  fi.Size(),
		Mtime: fi.ModTime().UnixNano(),
	}
	if stat, ok := fi.Sys().(*syscall.Stat_t); ok {
		md.Inode = stat.Ino
	}
	return md, nil
}

// HashContent returns the hex sha256 of data.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
