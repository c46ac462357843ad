// Package upload handles media ingestion: one multipart file in, a per-type
// set of public variant locations out.
package upload

import (
	"net/http"

	"github.com/GrantCuster/extra-grantcuster-com/media"
	"github.com/GrantCuster/extra-grantcuster-com/server/handler/common"
	"github.com/GrantCuster/extra-grantcuster-com/server/resp"
	"github.com/GrantCuster/extra-grantcuster-com/server/state"
	"github.com/GrantCuster/extra-grantcuster-com/server/util"
)

func HandleMediaUpload(st *state.State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := util.RequireValidMediaContentType(w, r); !ok {
			return
		}

		maxPayload := int64(st.Cfg.Server.Limits.MaxPayloadSize)
		maxFile := int64(st.Cfg.Server.Limits.MaxFileSize)

		f, fh, ok := util.ParseUploadFile(w, r, maxPayload, maxFile)
		if !ok {
			return
		}
		defer f.Close()

		result, err := st.Pipeline.Process(r.Context(), fh.Header.Get("Content-Type"), fh.Filename, f)
		if err != nil {
			common.LogAndWriteError(r.Context(), w, err)
			return
		}

		resp.WriteOK(w, payloadFor(result))
	})
}

// payloadFor shapes the response for each media kind. Field names are part of
// the public API consumed by the frontend.
func payloadFor(result *media.Result) any {
	switch result.Kind {
	case media.KindStaticImage:
		return map[string]string{
			"smallImageUrl": result.Locations[media.RoleSmall],
			"largeImageUrl": result.Locations[media.RoleLarge],
		}
	case media.KindAnimatedImage:
		return map[string]string{
			"gifUrl": result.Locations[media.RoleOriginal],
			"jpgUrl": result.Locations[media.RolePreview],
		}
	case media.KindVideo:
		return map[string]string{
			"videoUrl": result.Locations[media.RoleOriginal],
		}
	case media.KindAudio:
		return map[string]string{
			"audioUrl": result.Locations[media.RoleOriginal],
		}
	}

	return map[string]string{}
}
