package variables

import (
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// Sanitize enforces the reserved namespace on a variable set. Keys outside
// the namespace are dropped and reported; the cleaned set is returned so
// invalid properties are rejected rather than silently applied.
func Sanitize(vars siteconfig.VariableSet, logger interfaces.Logger) siteconfig.VariableSet {
	if logger == nil {
		logger = logging.NoOp()
	}

	out := make(siteconfig.VariableSet, len(vars))
	for key, value := range vars {
		if !strings.HasPrefix(key, Namespace) {
			logger.Warn("variables.key.rejected", "key", key)
			continue
		}
		out[key] = value
	}
	return out
}

// ValidateVariableSet is the post-hoc namespace check used by non-production
// builds; it reports offending keys without altering the set and never gates
// production output.
func ValidateVariableSet(vars siteconfig.VariableSet, logger interfaces.Logger) []string {
	if logger == nil {
		logger = logging.NoOp()
	}

	var invalid []string
	for key := range vars {
		if !strings.HasPrefix(key, Namespace) {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		logger.Warn("variables.validate.invalid_keys", "keys", strings.Join(invalid, ","))
	}
	return invalid
}
