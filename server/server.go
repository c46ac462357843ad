package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/media"
	"github.com/GrantCuster/extra-grantcuster-com/publish"
	"github.com/GrantCuster/extra-grantcuster-com/publish/bluesky"
	"github.com/GrantCuster/extra-grantcuster-com/publish/mastodon"
	"github.com/GrantCuster/extra-grantcuster-com/server/handler/crosspost"
	"github.com/GrantCuster/extra-grantcuster-com/server/handler/get"
	"github.com/GrantCuster/extra-grantcuster-com/server/handler/post"
	"github.com/GrantCuster/extra-grantcuster-com/server/handler/upload"
	"github.com/GrantCuster/extra-grantcuster-com/server/middleware"
	"github.com/GrantCuster/extra-grantcuster-com/server/state"
	mediafactory "github.com/GrantCuster/extra-grantcuster-com/storage/media/factory"
	recordsfactory "github.com/GrantCuster/extra-grantcuster-com/storage/records/factory"
)

// NewHandler builds the full route table for the given state. Every /api
// route sits behind the admin token gate; /test stays open as a liveness
// check.
func NewHandler(st *state.State) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /test", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Hello World!")
	})

	mux.Handle("POST /api/upload", middleware.RequireAdminToken(st.Cfg, upload.HandleMediaUpload(st)))
	mux.Handle("GET /api/files", middleware.RequireAdminToken(st.Cfg, get.HandleListFiles(st)))
	mux.Handle("POST /api/post", middleware.RequireAdminToken(st.Cfg, post.HandleCreatePost(st)))
	mux.Handle("POST /api/postToBluesky", middleware.RequireAdminToken(st.Cfg, crosspost.HandlePostToBluesky(st)))
	mux.Handle("POST /api/postToMastodon", middleware.RequireAdminToken(st.Cfg, crosspost.HandlePostToMastodon(st)))

	return middleware.AllowCORS(st.Cfg, mux)
}

// NewState assembles every collaborator from config: stores via the strategy
// factories, the ingestion pipeline, and one publisher per platform.
func NewState(cfg *config.Config) (*state.State, error) {
	mediaStore, err := mediafactory.Create(&cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("create media store: %w", err)
	}

	recordStore, err := recordsfactory.Create(&cfg.Records)
	if err != nil {
		return nil, fmt.Errorf("create record store: %w", err)
	}

	stager, err := media.NewStager("")
	if err != nil {
		return nil, fmt.Errorf("create stager: %w", err)
	}

	prefixes := append([]string{strings.TrimSuffix(mediaStore.PublicURL(""), "/")}, cfg.Media.LegacyBaseUrls...)
	resolver := publish.NewSourceResolver(mediaStore, prefixes)

	return &state.State{
		Cfg:        cfg,
		MediaStore: mediaStore,
		Records:    recordStore,
		Pipeline:   media.NewPipeline(stager, mediaStore),
		Bluesky:    bluesky.New(&cfg.Bluesky, resolver),
		Mastodon:   mastodon.New(&cfg.Mastodon),
	}, nil
}

func StartServer(cfg *config.Config) {
	st, err := NewState(cfg)
	if err != nil {
		log.Fatalf("failed to assemble server state: %v", err)
	}

	bindAddress := fmt.Sprintf("%v:%v", cfg.Server.Address, cfg.Server.Port)
	log.Printf("serving http requests on %q", bindAddress)
	log.Fatal(http.ListenAndServe(bindAddress, NewHandler(st)))
}
