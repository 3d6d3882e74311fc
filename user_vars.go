package headlessterm

// SetUserVar records an iTerm2-style user variable (OSC 1337 SetUserVar).
// The ansicode decoder parses the sequence's NAME=BASE64_VALUE payload,
// base64-decodes the value, and calls this method directly; malformed
// base64 is swallowed by the decoder and never reaches here (§7).
// This method name is required by the ansicode.Handler interface.
func (t *Terminal) SetUserVar(name, value string) {
	if t.middleware != nil && t.middleware.SetUserVar != nil {
		t.middleware.SetUserVar(name, value, t.setUserVarInternal)
		return
	}
	t.setUserVarInternal(name, value)
}

func (t *Terminal) setUserVarInternal(name, value string) {
	if t.userVars == nil {
		t.userVars = make(map[string]string)
	}
	t.userVars[name] = value
}

// GetUserVar returns the value of a user variable, or "" if unset.
func (t *Terminal) GetUserVar(name string) string {
	return t.userVars[name]
}

// GetUserVars returns a copy of all recorded user variables.
func (t *Terminal) GetUserVars() map[string]string {
	out := make(map[string]string, len(t.userVars))
	for k, v := range t.userVars {
		out[k] = v
	}
	return out
}

// ClearUserVars removes all recorded user variables.
func (t *Terminal) ClearUserVars() {
	t.userVars = make(map[string]string)
}
