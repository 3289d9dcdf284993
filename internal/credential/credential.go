// Package credential resolves the TestDino personal access token for a call.
package credential

import "errors"

// EnvVar is the environment variable holding the token.
const EnvVar = "TESTDINO_API_KEY"

// ArgName is the per-call argument consulted when no token is configured.
const ArgName = "token"

// ErrMissing is returned by tools that cannot proceed without a token.
var ErrMissing = errors.New("Missing " + EnvVar + " environment variable. " +
	"Please configure it in your .cursor/mcp.json file under the 'env' section.")

// Resolver picks the token for a call. The configured token wins over the
// per-call argument.
type Resolver struct {
	token string
}

// NewResolver returns a Resolver with the configured token, which may be empty.
func NewResolver(token string) *Resolver {
	return &Resolver{token: token}
}

// Resolve returns the token and whether one was found. Non-string token
// arguments are ignored.
func (r *Resolver) Resolve(args map[string]any) (string, bool) {
	if r != nil && r.token != "" {
		return r.token, true
	}
	if tok, ok := args[ArgName].(string); ok && tok != "" {
		return tok, true
	}
	return "", false
}
