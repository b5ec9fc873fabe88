package deployer

// ComputeDelta returns the minimal change set that makes the remote
// config var state equal to desired: keys whose value differs (or that
// are missing remotely) map to their new value, keys present remotely
// but absent from desired map to nil (remove). Keys equal in both are
// omitted, because the platform treats an omitted key as unchanged and
// an explicit null as a delete. The delta is empty iff the mappings
// are equal.
//
// Desired must be the complete desired state: anything absent from it
// but present remotely will be removed.
func ComputeDelta(desired, current map[string]string) map[string]*string {
	delta := map[string]*string{}
	for k, v := range desired {
		if cur, ok := current[k]; !ok || cur != v {
			value := v
			delta[k] = &value
		}
	}
	for k := range current {
		if _, ok := desired[k]; !ok {
			delta[k] = nil
		}
	}
	return delta
}
