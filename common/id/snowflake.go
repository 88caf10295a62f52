package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID. Must be called
// once at startup before any request is served.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// NewRequestID returns a fresh time-ordered request identifier. The string
// form is what gets logged and echoed in response payloads.
func NewRequestID() string {
	return node.Generate().String()
}
