package middleware

import (
	"context"
	"net"
	"net/http"

	"savora-storefront/internal/auth"
	"savora-storefront/internal/logger"

	"github.com/google/uuid"
)

type contextKey string

const (
	shopperKey contextKey = "shopperKey"
	tokenKey   contextKey = "bearerToken"
)

// ShopperFrom returns the resolved shopper key for the request.
func ShopperFrom(ctx context.Context) string {
	key, _ := ctx.Value(shopperKey).(string)
	return key
}

// TokenFrom returns the raw bearer token, if one was presented.
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

// Identity resolves every request to a shopper key: the token's user id when
// a bearer token is presented, the client's device id otherwise, the remote
// IP as a last resort. All stores are partitioned by this key.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var shopper string
		if token := auth.ExtractBearer(r); token != "" {
			ctx = context.WithValue(ctx, tokenKey, token)
			if sub := auth.TokenSubject(token); sub != "" {
				shopper = "user:" + sub
			}
		}
		if shopper == "" {
			if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
				shopper = "device:" + deviceID
			}
		}
		if shopper == "" {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			shopper = "ip:" + ip
		}

		ctx = context.WithValue(ctx, shopperKey, shopper)
		ctx = logger.WithShopper(ctx, shopper)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID tags each request with an id for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		ctx := logger.WithRequestID(r.Context(), reqID)
		w.Header().Set("X-Request-ID", reqID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
