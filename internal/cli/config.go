package cli

import "github.com/toyz/testgen/internal/manifest"

// Config holds the configuration for a CLI run
type Config struct {
	// Manifests lists manifest files or directories to read them from.
	// Directories support the "dir/..." pattern for recursive scanning.
	Manifests []string

	// OutputDir receives one <Controller>_<method>.txt file per action.
	// Fragments are printed to stdout when it is empty.
	OutputDir string

	// SuperAdmin forces the super-admin role on every actor
	SuperAdmin bool

	// FrameworkVersion overrides the manifest's framework_version
	FrameworkVersion string

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// overrides returns the settings that win over each manifest's config block
func (c Config) overrides() manifest.Overrides {
	return manifest.Overrides{
		SuperAdmin:       c.SuperAdmin,
		FrameworkVersion: c.FrameworkVersion,
	}
}
