// Package crosspost handles dispatch of already-published content to the
// external social platforms.
package crosspost

import (
	"encoding/json"
	"net/http"

	"github.com/GrantCuster/extra-grantcuster-com/publish"
	"github.com/GrantCuster/extra-grantcuster-com/server/handler/common"
	"github.com/GrantCuster/extra-grantcuster-com/server/resp"
	"github.com/GrantCuster/extra-grantcuster-com/server/state"
	"github.com/GrantCuster/extra-grantcuster-com/server/util"
)

type blueskyRequest struct {
	Status      string `json:"status"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type mastodonRequest struct {
	Status string `json:"status"`
}

var posted = map[string]string{"success": "posted"}

func HandlePostToBluesky(st *state.State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := util.RequireValidJSONContentType(w, r); !ok {
			return
		}

		var in blueskyRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			resp.WriteInvalidRequest(w, "request body must be valid JSON")
			return
		}

		if in.Status == "" {
			resp.WriteInvalidRequest(w, "status text is required")
			return
		}

		post := publish.OutboundPost{Text: in.Status}
		if in.URL != "" {
			post.Embed = &publish.LinkEmbed{
				URL:         in.URL,
				Title:       in.Title,
				Description: in.Description,
				ThumbURL:    in.Image,
			}
		}

		if err := st.Bluesky.Publish(r.Context(), post); err != nil {
			common.LogAndWriteError(r.Context(), w, err)
			return
		}

		resp.WriteOK(w, posted)
	})
}

func HandlePostToMastodon(st *state.State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := util.RequireValidJSONContentType(w, r); !ok {
			return
		}

		var in mastodonRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			resp.WriteInvalidRequest(w, "request body must be valid JSON")
			return
		}

		if in.Status == "" {
			resp.WriteInvalidRequest(w, "status text is required")
			return
		}

		if err := st.Mastodon.Publish(r.Context(), publish.OutboundPost{Text: in.Status}); err != nil {
			common.LogAndWriteError(r.Context(), w, err)
			return
		}

		resp.WriteOK(w, posted)
	})
}
