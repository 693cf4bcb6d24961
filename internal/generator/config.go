package generator

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/toyz/testgen/internal/rules"
)

const (
	// DefaultActorVariable is the variable generated tests act as
	DefaultActorVariable = "$user"
	// DefaultActorClass is the model the actor is created from
	DefaultActorClass = `App\Models\User`
	// SuperAdminRole is the role assigned to the actor when Config.SuperAdminRole is set
	SuperAdminRole = "super-admin"
)

// modelMissingSince is the first framework release without assertDeleted
const modelMissingSince = "v10.0.0"

// Config is fixed when a generator is constructed and read-only afterwards
type Config struct {
	// SuperAdminRole makes the actor a super admin before acting as it
	SuperAdminRole bool
	// ActorVariable is the PHP variable holding the acting user
	ActorVariable string
	// ActorClass is the fully qualified class of the acting user
	ActorClass string
	// IgnoreRules are rule tokens that never produce data provider rows;
	// nil means rules.DefaultIgnored
	IgnoreRules []string
	// FrameworkVersion selects version dependent assertions, e.g. "10.2"
	FrameworkVersion string
	// API is the default mode for actions whose mode cannot be inferred
	API bool
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() Config {
	return Config{
		ActorVariable: DefaultActorVariable,
		ActorClass:    DefaultActorClass,
	}
}

// withDefaults fills the zero fields of c
func (c Config) withDefaults() Config {
	if c.ActorVariable == "" {
		c.ActorVariable = DefaultActorVariable
	}
	if !strings.HasPrefix(c.ActorVariable, "$") {
		c.ActorVariable = "$" + c.ActorVariable
	}
	if c.ActorClass == "" {
		c.ActorClass = DefaultActorClass
	}
	return c
}

// IgnoreSet returns the configured ignore set
func (c Config) IgnoreSet() rules.IgnoreSet {
	if c.IgnoreRules == nil {
		return rules.DefaultIgnoreSet()
	}
	return rules.NewIgnoreSet(c.IgnoreRules...)
}

// CanonicalVersion turns "10", "10.2" or "v10.2.1" into a semver string,
// or returns "" when the version is not valid
func CanonicalVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return ""
	}
	return semver.Canonical(version)
}

// DeletionAssertion names the assertion that checks a model was deleted
func (c Config) DeletionAssertion(softDeletes bool) string {
	if softDeletes {
		return "assertSoftDeleted"
	}
	if v := CanonicalVersion(c.FrameworkVersion); v != "" && semver.Compare(v, modelMissingSince) >= 0 {
		return "assertModelMissing"
	}
	return "assertDeleted"
}
