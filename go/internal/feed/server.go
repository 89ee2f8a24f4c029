package feed

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// NewServer wraps the feed's routes with CORS and HTTP/2 cleartext support.
// gatherer may be nil when metrics are off.
func NewServer(addr string, service *Service, gatherer prometheus.Gatherer) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: NewRootHandler(service, gatherer),
	}
}

func NewRootHandler(service *Service, gatherer prometheus.Gatherer) http.Handler {
	r := NewHandler(service).Routes()
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	return h2c.NewHandler(c.Handler(r), &http2.Server{})
}
