package main

import (
	"fmt"
	"net/http"

	_ "github.com/lintang-b-s/shadowgraph/docs"
	"github.com/lintang-b-s/shadowgraph/pkg/pipeline"
	"github.com/lintang-b-s/shadowgraph/pkg/server/rest"
	"github.com/lintang-b-s/shadowgraph/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		listenAddr string
		graphFile  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a stored shadow graph over http",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("listenaddr") {
				cfg.Server.ListenAddr = listenAddr
			}
			logger := loggerFromContext(cmd.Context())
			defer logger.Sync()

			serving, err := pipeline.Open(cmd.Context(), cfg, graphFile, logger)
			if err != nil {
				return err
			}
			defer serving.Close()

			reg := prometheus.NewRegistry()
			m := rest.NewMetrics(reg)

			r := chi.NewRouter()

			r.Use(middleware.Logger)
			r.Use(middleware.Recoverer)
			r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
				ExposedHeaders:   []string{"Link"},
				AllowCredentials: false,
				MaxAge:           300,
			}))

			r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

			r.Get("/swagger/*", httpSwagger.Handler(
				httpSwagger.URL(fmt.Sprintf("http://localhost%s/swagger/doc.json", cfg.Server.ListenAddr)),
			))

			svc := service.NewGraphService(serving.Graph, serving.Index, serving.KV, serving.Meta)
			rest.GraphRouter(r, svc)

			logger.Info("server started", zap.String("addr", cfg.Server.ListenAddr))
			return http.ListenAndServe(cfg.Server.ListenAddr, r)
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listenaddr", ":5000", "server listen address")
	cmd.Flags().StringVarP(&graphFile, "graph-file", "g", "", "serve this exported .graph file instead of the stored snapshot")
	return cmd
}
