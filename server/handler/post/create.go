// Package post handles blog post creation against the record store.
package post

import (
	"encoding/json"
	"net/http"

	"github.com/GrantCuster/extra-grantcuster-com/server/handler/common"
	"github.com/GrantCuster/extra-grantcuster-com/server/resp"
	"github.com/GrantCuster/extra-grantcuster-com/server/state"
	"github.com/GrantCuster/extra-grantcuster-com/server/util"
	"github.com/GrantCuster/extra-grantcuster-com/storage/records"
)

func HandleCreatePost(st *state.State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := util.RequireValidJSONContentType(w, r); !ok {
			return
		}

		var in records.NewPost
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			resp.WriteInvalidRequest(w, "request body must be valid JSON")
			return
		}

		if in.Content == "" {
			resp.WriteInvalidRequest(w, "post content is required")
			return
		}

		created, err := st.Records.CreatePost(r.Context(), in)
		if err != nil {
			common.LogAndWriteError(r.Context(), w, err)
			return
		}

		resp.WriteCreated(w, created)
	})
}
