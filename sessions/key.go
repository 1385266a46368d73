package sessions

import (
	"fmt"

	"github.com/jrsteele09/go-vk-client/internal/utils"
	"github.com/spaolacci/murmur3"
)

const keyPrefix = "vkapi:"

// Key derives the session key for a scope set. The scope is sorted before
// hashing, so the same permissions in any order share one session.
func Key(scope []string) string {
	return fmt.Sprintf("%s%016x", keyPrefix, murmur3.Sum64([]byte(utils.SortedJoin(scope, ","))))
}
