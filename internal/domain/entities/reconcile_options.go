package entities

const (
	// DefaultRemote is the upstream used when none is configured.
	DefaultRemote = "origin"
	// FallbackBranch is used when the remote does not advertise a HEAD.
	FallbackBranch = "master"
)

// ReconcileOptions holds runtime options for a single reconciliation.
type ReconcileOptions struct {
	Dir    string // Directory holding the wheels, default "."
	DryRun bool
	Remote string // Upstream remote name, default DefaultRemote
	Branch string // Upstream branch; empty means the remote HEAD or FallbackBranch
}
