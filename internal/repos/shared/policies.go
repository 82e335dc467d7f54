package shared

// SafetyCheckPolicy specifies whether removal must pass the repository safety checks.
type SafetyCheckPolicy int

const (
	// SafetyChecksRequired blocks removal of projects with stashes, unpushed commits or unstaged changes.
	SafetyChecksRequired SafetyCheckPolicy = iota
	// SafetyChecksSkipped removes projects regardless of their repository state.
	SafetyChecksSkipped
)

// SafetyCheckPolicyFromForce converts the force flag into a policy.
func SafetyCheckPolicyFromForce(force bool) SafetyCheckPolicy {
	if force {
		return SafetyChecksSkipped
	}
	return SafetyChecksRequired
}

// ShouldInspect reports whether the safety checks must run.
func (policy SafetyCheckPolicy) ShouldInspect() bool {
	return policy != SafetyChecksSkipped
}

// OpenPolicy describes whether a freshly started project is opened in an editor.
type OpenPolicy int

const (
	// OpenAfterStart opens the project after cloning.
	OpenAfterStart OpenPolicy = iota
	// SkipOpenAfterStart leaves the project closed after cloning.
	SkipOpenAfterStart
)

// OpenPolicyFromNoOpen converts the no-open flag into a policy value.
func OpenPolicyFromNoOpen(noOpen bool) OpenPolicy {
	if noOpen {
		return SkipOpenAfterStart
	}
	return OpenAfterStart
}

// ShouldOpen reports whether the editor flow follows a clone.
func (policy OpenPolicy) ShouldOpen() bool {
	return policy == OpenAfterStart
}
