package idgen

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique booking identifiers.
type Generator interface {
	NextID() int64
	NextReference() string
}

// SnowflakeGenerator is safe for concurrent use; snowflake.Node serializes internally.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator needs a node ID unique per running instance (0-1023).
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("idgen: create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) NextID() int64 {
	return g.node.Generate().Int64()
}

// NextReference returns an upper-case base36 rendering of a fresh ID, e.g. "1L9ZQ4RK0W4XS".
func (g *SnowflakeGenerator) NextReference() string {
	return strings.ToUpper(g.node.Generate().Base36())
}
