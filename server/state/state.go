package state

import (
	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/media"
	"github.com/GrantCuster/extra-grantcuster-com/publish"
	storagemedia "github.com/GrantCuster/extra-grantcuster-com/storage/media"
	"github.com/GrantCuster/extra-grantcuster-com/storage/records"
)

// State carries every collaborator a handler may need. It is built once at
// startup and injected; handlers never reach for globals.
type State struct {
	Cfg        *config.Config
	MediaStore storagemedia.Store
	Records    records.Store
	Pipeline   *media.Pipeline
	Bluesky    publish.Publisher
	Mastodon   publish.Publisher
}
