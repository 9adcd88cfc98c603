// Package ids assigns system-wide int64 identifiers.
package ids

import (
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
)

var (
	node *snowflake.Node
	once sync.Once
)

// NextID returns a new snowflake identifier. The node number comes from
// FEASTLANE_NODE_ID when set, so multiple instances never collide.
func NextID() int64 {
	once.Do(func() {
		n := cast.ToInt64(os.Getenv("FEASTLANE_NODE_ID"))
		if n < 0 || n > 1023 {
			n = 0
		}
		var err error
		node, err = snowflake.NewNode(n)
		if err != nil {
			panic(err)
		}
	})
	return node.Generate().Int64()
}
