package common

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/GrantCuster/extra-grantcuster-com/media"
	"github.com/GrantCuster/extra-grantcuster-com/server/resp"
	"github.com/GrantCuster/extra-grantcuster-com/server/util"
	"github.com/GrantCuster/extra-grantcuster-com/storage/records"
)

// LogAndWriteError maps a handler error onto the right JSON error response.
// Internal detail stays in the server log; clients get a generic description.
func LogAndWriteError(ctx context.Context, w http.ResponseWriter, err error) {
	logf(ctx, "request failed: %v", err)

	switch {
	case errors.Is(err, media.ErrUnsupportedMediaType):
		resp.WriteInvalidRequest(w, "unsupported media type")
	case errors.Is(err, records.ErrNotFound):
		resp.WriteNotFound(w, "no such post")
	default:
		resp.WriteInternalServerError(w, "request could not be completed")
	}
}

func logf(ctx context.Context, format string, v ...any) {
	if rl := util.FromContext(ctx); rl != nil {
		rl.Errorf(format, v...)
		return
	}
	log.Printf(format, v...)
}
