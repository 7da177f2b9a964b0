// Where: cli/internal/infra/config/runtime.go
// What: Runtime environment loaded from the .env file.
// Why: Give operations an explicit view of the variables instead of reading
// the process environment ad hoc.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Well-known runtime keys.
const (
	KeyDBURL           = "DB_URL"
	KeyDBName          = "DB_NAME"
	KeyAppURL          = "APP_URL"
	KeyS3AccessKeyID   = "BACKUP_S3_ACCESS_KEY_ID"
	KeyS3SecretKey     = "BACKUP_S3_SECRET_ACCESS_KEY"
	KeyS3SessionToken  = "BACKUP_S3_SESSION_TOKEN"
	KeyAWSRegion       = "AWS_REGION"
	keyValueSeparator  = "="
	environSliceExtras = 8
)

// Runtime is the merged view of the .env file and the process environment
// captured at load time. Process variables win, matching godotenv.Load.
type Runtime struct {
	Path    string
	Loaded  bool
	file    map[string]string
	process map[string]string
}

// LoadRuntime reads path with godotenv and captures environ. A missing file
// yields an empty, not-loaded Runtime.
func LoadRuntime(path string, environ []string) (Runtime, error) {
	rt := Runtime{
		Path:    path,
		file:    map[string]string{},
		process: parseEnviron(environ),
	}
	if strings.TrimSpace(path) == "" {
		return rt, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rt, nil
		}
		return Runtime{}, fmt.Errorf("load env file %s: %w", path, err)
	}
	rt.file = values
	rt.Loaded = true
	return rt, nil
}

// NewRuntime builds a Runtime from literal values, mainly for tests.
func NewRuntime(values map[string]string) Runtime {
	file := make(map[string]string, len(values))
	for k, v := range values {
		file[k] = v
	}
	return Runtime{file: file, process: map[string]string{}, Loaded: len(values) > 0}
}

// Lookup returns the value for key.
func (r Runtime) Lookup(key string) (string, bool) {
	if v, ok := r.process[key]; ok {
		return v, true
	}
	v, ok := r.file[key]
	return v, ok
}

// Get returns the value for key or an empty string.
func (r Runtime) Get(key string) string {
	v, _ := r.Lookup(key)
	return v
}

// DBURL is the active database connection string.
func (r Runtime) DBURL() string {
	return r.Get(KeyDBURL)
}

// Environ returns the child-process environment: the captured process
// variables followed by .env variables not already set.
func (r Runtime) Environ() []string {
	out := make([]string, 0, len(r.process)+len(r.file)+environSliceExtras)
	for _, key := range sortedKeys(r.process) {
		out = append(out, key+keyValueSeparator+r.process[key])
	}
	for _, key := range sortedKeys(r.file) {
		if _, ok := r.process[key]; ok {
			continue
		}
		out = append(out, key+keyValueSeparator+r.file[key])
	}
	return out
}

// Mapping returns every resolved variable as a map.
func (r Runtime) Mapping() map[string]string {
	out := make(map[string]string, len(r.process)+len(r.file))
	for k, v := range r.file {
		out[k] = v
	}
	for k, v := range r.process {
		out[k] = v
	}
	return out
}

func parseEnviron(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, keyValueSeparator)
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
