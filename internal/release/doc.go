// Package release provides the record type for scheduled ABS statistical releases.
//
// The release package handles record representation, identification, and the
// topic taxonomy carried by a release's "latest release" URL. Each record is
// assigned a deterministic UID derived from its title, reference period and
// release time, so calendar clients see a stable identifier across refreshes.
package release
