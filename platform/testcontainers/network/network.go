package network

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	tcnetwork "github.com/testcontainers/testcontainers-go/network"
)

// Network is the bridge network the containers of one test suite share.
type Network struct {
	network *testcontainers.DockerNetwork
}

func NewNetwork(ctx context.Context, suite string) (*Network, error) {
	net, err := tcnetwork.New(ctx,
		tcnetwork.WithDriver(testcontainers.Bridge),
		tcnetwork.WithAttachable(),
		tcnetwork.WithLabels(map[string]string{
			"project": "workshop",
			"suite":   suite,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s network: %w", suite, err)
	}

	return &Network{network: net}, nil
}

// Join attaches a container to the network under the given aliases.
func (n *Network) Join(aliases ...string) testcontainers.CustomizeRequestOption {
	return tcnetwork.WithNetworkName(aliases, n.network.Name)
}

// Remove is a no-op on a nil network so suites can call it from teardown
// whatever state setup stopped in.
func (n *Network) Remove(ctx context.Context) error {
	if n == nil || n.network == nil {
		return nil
	}
	return n.network.Remove(ctx)
}
