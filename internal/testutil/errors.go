package testutil

import "errors"

// ErrSimulated is what a stubbed script or store returns when a battle test
// needs its collaborator to fail.
var ErrSimulated = errors.New("battlecore: simulated collaborator failure")
