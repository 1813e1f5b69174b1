package main

import (
	"context"
	"flag"
	"html"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/pixelfederation/eks-cost-estimator/estimator"
	estimatoraws "github.com/pixelfederation/eks-cost-estimator/estimator/aws"
)

var (
	configPath  = flag.String("config", "config.yaml", "Path to the YAML settings file.")
	rawLevel    = flag.String("log-level", "info", "log level")
	addr        = flag.String("listen-address", "", "Serve the estimate as Prometheus metrics on this address instead of printing a one-shot report.")
	metricsPath = flag.String("metrics-path", "/metrics", "path to metrics endpoint")
	cache       = flag.Int("cache", 300, "How long a computed estimate is served before AWS is queried again, in seconds")
)

func main() {
	flag.Parse()
	parsedLevel, err := log.ParseLevel(*rawLevel)
	if err != nil {
		log.WithError(err).Warnf("Couldn't parse log level, using default: %s", log.GetLevel())
	} else {
		log.SetLevel(parsedLevel)
		log.Debugf("Set log level to %s", parsedLevel)
	}

	// Configuration must be complete before any AWS client is constructed.
	cfg, err := estimator.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	log.Infof("Starting EKS cost estimate. [cluster=%s, region=%s, profile=%s]", cfg.ClusterName, cfg.Region, cfg.Profile)

	est := estimator.New(cfg, &estimatoraws.SDKClientFactory{
		Region:  cfg.Region,
		Profile: cfg.Profile,
	})

	if *addr == "" {
		result, err := est.Estimate(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		if err := estimator.Render(os.Stdout, result); err != nil {
			log.Fatal(err)
		}
		return
	}

	collector := estimator.NewCollector(est, time.Duration(*cache)*time.Second)
	prometheus.MustRegister(collector)

	http.Handle(*metricsPath, promhttp.Handler())
	http.HandleFunc("/", rootHandler)

	srv := &http.Server{
		Addr:         *addr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		log.Infof("Received %s, shutting down...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	log.Infof("Starting metric http endpoint [address=%s, path=%s]", *addr, *metricsPath)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	safePath := html.EscapeString(*metricsPath)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<html>
		<head><title>EKS Cost Estimator</title></head>
		<body>
		<h1>EKS Cost Estimator</h1>
		<p><a href="` + safePath + `">Metrics</a></p>
		</body>
		</html>
	`))
}
