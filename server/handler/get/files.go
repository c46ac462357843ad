// Package get serves the read-only endpoints.
package get

import (
	"net/http"

	"github.com/GrantCuster/extra-grantcuster-com/server/handler/common"
	"github.com/GrantCuster/extra-grantcuster-com/server/resp"
	"github.com/GrantCuster/extra-grantcuster-com/server/state"
)

// HandleListFiles returns every stored object, most recently modified first.
func HandleListFiles(st *state.State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		objects, err := st.MediaStore.List(r.Context())
		if err != nil {
			common.LogAndWriteError(r.Context(), w, err)
			return
		}

		resp.WriteOK(w, objects)
	})
}
