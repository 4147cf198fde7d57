// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

// Package serve runs the analysis pipeline on a schedule and exposes
// the most recent report over HTTP.
package serve

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/kubehealth/kubehealth/pkg/analysis"
	"github.com/kubehealth/kubehealth/pkg/commands/analyze"
	"github.com/kubehealth/kubehealth/pkg/report"
	"github.com/kubehealth/kubehealth/pkg/version"
)

var (
	analysisRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kubehealth_analysis_runs_total",
		Help: "Number of analysis passes that have been attempted",
	})
	analysisErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kubehealth_analysis_errors_total",
		Help: "Number of analysis passes that failed",
	})
	analysisDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kubehealth_analysis_duration_seconds",
		Help: "Duration of the most recent analysis pass",
	})
	namespacesMonitored = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kubehealth_namespaces_monitored",
		Help: "Tenant namespaces covered by the most recent report",
	})
	podsRunning = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kubehealth_pods_running",
		Help: "Running pods across all tenant namespaces",
	})
	podsWithIssues = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kubehealth_pods_with_issues",
		Help: "Pending or failed pods across all tenant namespaces",
	})
	activeIncidents = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kubehealth_active_incidents",
		Help: "PagerDuty incidents that are triggered or acknowledged",
	})
	availabilityAverage = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kubehealth_availability_average",
		Help: "Average namespace availability percentage",
	})
	namespaceHealth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kubehealth_namespace_health",
		Help: "Number of tenant namespaces at each health grade",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(
		analysisRuns,
		analysisErrors,
		analysisDuration,
		namespacesMonitored,
		podsRunning,
		podsWithIssues,
		activeIncidents,
		availabilityAverage,
		namespaceHealth,
	)
}

// Options are the options for the serve command
type Options struct {
	// Analysis holds the options applied to every analysis pass
	Analysis analyze.Options

	// Address is the address the HTTP endpoints listen on
	Address string

	// Interval is the delay between analysis passes
	Interval time.Duration
}

// Server reruns the analysis on a schedule and keeps the most recent
// report available to the HTTP handlers.
type Server struct {
	options Options

	mu      sync.RWMutex
	current *report.StatusReport

	reload     chan struct{}
	httpServer *http.Server
}

// New creates a server that is ready to run.
func New(options Options) *Server {
	s := &Server{
		options: options,
		reload:  make(chan struct{}, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         options.Address,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Run serves until the context is canceled. The first analysis pass
// starts immediately. Later passes run on every interval tick and
// after the tenant mapping file changes.
func (s *Server) Run(ctx context.Context) error {
	go s.watchTenants(ctx)

	listenErr := make(chan error, 1)
	go func() {
		log.Infof("Listening on %s", s.options.Address)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	s.runOnce()

	ticker := time.NewTicker(s.options.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return s.httpServer.Shutdown(shutdownCtx)
		case err := <-listenErr:
			return err
		case <-ticker.C:
			s.runOnce()
		case <-s.reload:
			log.Info("Tenant mapping changed, starting an analysis pass")
			s.runOnce()
		}
	}
}

// Current returns the most recent report, or nil before the first
// pass completes.
func (s *Server) Current() *report.StatusReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// runOnce runs a single analysis pass and publishes the result. A
// failed pass keeps the previous report in place.
func (s *Server) runOnce() {
	start := time.Now()
	result, err := analyze.Analyze(s.options.Analysis)
	analysisRuns.Inc()
	analysisDuration.Set(time.Since(start).Seconds())
	if err != nil {
		analysisErrors.Inc()
		log.Errorf("Analysis pass failed: %v", err)
		return
	}

	record(result)
	s.mu.Lock()
	s.current = result
	s.mu.Unlock()
}

// record exports the summary of a report through the gauges.
func record(result *report.StatusReport) {
	namespacesMonitored.Set(float64(result.Summary.TotalNamespacesMonitored))
	podsRunning.Set(float64(result.Summary.PodsRunning))
	podsWithIssues.Set(float64(result.Summary.PodsWithIssues))
	activeIncidents.Set(float64(result.Summary.ActiveIncidents))
	availabilityAverage.Set(result.Summary.AvailabilityAverage)
	namespaceHealth.WithLabelValues(string(analysis.StatusHealthy)).Set(float64(result.HealthDistribution.Healthy))
	namespaceHealth.WithLabelValues(string(analysis.StatusWarning)).Set(float64(result.HealthDistribution.Warning))
	namespaceHealth.WithLabelValues(string(analysis.StatusCritical)).Set(float64(result.HealthDistribution.Critical))
}

// watchTenants schedules an analysis pass whenever the tenant mapping
// file changes. The watch is placed on the parent directory so that
// editors that replace the file instead of rewriting it are still
// seen.
func (s *Server) watchTenants(ctx context.Context) {
	conf := s.options.Analysis.Config
	if conf == nil || conf.TenantsFile == "" {
		return
	}
	path := filepath.Clean(conf.TenantsFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warnf("Could not watch %s for changes: %v", path, err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		log.Warnf("Could not watch %s for changes: %v", path, err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Rename == fsnotify.Rename {
				s.scheduleReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("Tenant mapping watcher error: %v", err)
		}
	}
}

// scheduleReload requests an analysis pass without blocking. A request
// that arrives while one is already pending is dropped.
func (s *Server) scheduleReload() {
	select {
	case s.reload <- struct{}{}:
	default:
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Get().Version,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	current := s.Current()
	if current == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "no analysis has completed yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Debugf("Could not write response: %v", err)
	}
}
