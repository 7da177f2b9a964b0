// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep project identity and fixed file names in one place.
package meta

const (
	// Project Identity
	AppName = "stackctl"

	// Fixed file names relative to the project root
	EnvFile      = ".env"
	SettingsFile = "stackctl.yml"
	LockFile     = ".stackctl.lock"
)
