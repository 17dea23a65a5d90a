// File: internal/topology/helpers_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package topology

import (
	"errors"

	"github.com/momentics/hioload-shepherd/api"
)

var errBroken = errors.New("provider broken")

// failingProvider fails every query.
type failingProvider struct {
	groups int
}

func (failingProvider) Root() (api.LocalityID, error) { return 0, errBroken }

func (failingProvider) DirectCPUs(api.LocalityID) ([]int, error) { return nil, errBroken }

func (failingProvider) Children(api.LocalityID) ([]api.LocalityID, error) { return nil, errBroken }

func (failingProvider) Latency(_, _ api.LocalityID) (int, error) { return 0, errBroken }

func (f failingProvider) GroupCount() (int, error) {
	if f.groups != 0 {
		return f.groups, nil
	}
	return 0, errBroken
}

func (failingProvider) Close() error { return nil }
