package version

// Build metadata, overridden at link time with
// -ldflags "-X github.com/GravisZro/gpi-kit/pkg/version.version=..."
var (
	version  = "dev"
	branch   = "unknown"
	date     = "unknown"
	revision = "unknown"
)

// Version returns the semantic version of the build.
func Version() string {
	return version
}

// Branch returns the VCS branch of the build.
func Branch() string {
	return branch
}

// Date returns the build date.
func Date() string {
	return date
}

// Revision returns the VCS commit hash of the build.
func Revision() string {
	return revision
}
