package netguard

import "errors"

// ErrNetworkBlocked matches any *NetworkBlockedError via errors.Is.
var ErrNetworkBlocked = errors.New("network blocked")

const blockedMessage = "Outbound network disabled for offline smoke test"

// NetworkBlockedError is returned for every connection attempt made while
// the guard is active.
type NetworkBlockedError struct {
	Network string // e.g. "tcp"
	Address string // target that was refused
}

func (e *NetworkBlockedError) Error() string {
	if e.Address == "" {
		return blockedMessage
	}
	return blockedMessage + " (dial " + e.Network + " " + e.Address + ")"
}

// Is reports whether target is ErrNetworkBlocked.
func (e *NetworkBlockedError) Is(target error) bool {
	return target == ErrNetworkBlocked
}
