package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/ecommerce-services/internal/pkg/interceptors"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/interceptors/constants"
)

// AttachRequestMetadata copies chi's request id into the context and into
// the outgoing gRPC metadata so that backend logs share it.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		if requestID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := interceptors.WithRequestID(r.Context(), requestID)
		ctx = metadata.AppendToOutgoingContext(ctx, constants.HeaderXRequestId, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
