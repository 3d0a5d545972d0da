package api

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/smzarrabimmp/cms/cmd/contextx"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/metrics"
)

// withRequestContext records when the request arrived and who sent it,
// for the security log's CEF extensions.
func withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := contextx.WithReceiptTime(r.Context(), time.Now())

		if host, port, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			if p, err := strconv.Atoi(port); err == nil {
				ctx = contextx.WithPeerAddr(ctx, &net.TCPAddr{
					IP:   net.ParseIP(host),
					Port: p,
				})
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recoverPanics(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error(internal, fmt.Errorf("%s", p))
					writeError(w, http.StatusInternalServerError, errCodeInternal)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// instrument wraps a route's handler with the request count, success
// gauge, and duration metrics for that route. A response below 500
// counts as a success; rejected saves and assignments are the server
// doing its job.
func instrument(statter metrics.Statter, route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		statter.Inc(fmt.Sprintf("cms.usergroups.count.%s", route), 1)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)

		var successValue int64
		if recorder.status < http.StatusInternalServerError {
			successValue = 1
		}
		statter.Gauge(fmt.Sprintf("cms.usergroups.success.%s", route), successValue)

		statter.TimingDuration(fmt.Sprintf("cms.usergroups.requestduration.%s", route), time.Since(start))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
