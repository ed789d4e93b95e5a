package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/vertti/importcheck/pkg/netguard"
)

const namespace = "importcheck"

// PrometheusCollector keeps metrics in a private registry.
type PrometheusCollector struct {
	config   Config
	logger   Logger
	registry *prometheus.Registry
	client   *http.Client

	importSuccess  *prometheus.GaugeVec
	importDuration *prometheus.GaugeVec
	failures       prometheus.Gauge
	lastRun        prometheus.Gauge
}

// NewPrometheusCollector registers:
//   - importcheck_import_success{module} (1 or 0)
//   - importcheck_import_duration_seconds{module}
//   - importcheck_failures
//   - importcheck_last_run_timestamp_seconds
func NewPrometheusCollector(config Config, logger Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &PrometheusCollector{
		config:   config,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		// Pushes dial through the guard policy so they are refused while it is held.
		client: &http.Client{Transport: &http.Transport{
			Proxy:       http.ProxyFromEnvironment,
			DialContext: netguard.DialContext,
		}},
		importSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "import_success",
			Help:      "Whether the module imported successfully (1) or not (0).",
		}, []string{"module"}),
		importDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Wall time of the module import.",
		}, []string{"module"}),
		failures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "failures",
			Help:      "Number of modules that failed to import in the last run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}),
	}

	for _, m := range []prometheus.Collector{c.importSuccess, c.importDuration, c.failures, c.lastRun} {
		if err := c.registry.Register(m); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return c, nil
}

func (c *PrometheusCollector) RecordImport(module string, duration time.Duration, ok bool) {
	v := 0.0
	if ok {
		v = 1
	}
	c.importSuccess.WithLabelValues(module).Set(v)
	c.importDuration.WithLabelValues(module).Set(duration.Seconds())
}

func (c *PrometheusCollector) RecordRun(failures int) {
	c.failures.Set(float64(failures))
	c.lastRun.SetToCurrentTime()
}

// Publish writes the textfile and pushes to the Pushgateway, whichever are
// configured. Both are attempted; their errors are joined.
func (c *PrometheusCollector) Publish(ctx context.Context) error {
	var errs []error

	if c.config.TextfilePath != "" {
		if err := prometheus.WriteToTextfile(c.config.TextfilePath, c.registry); err != nil {
			errs = append(errs, fmt.Errorf("metrics: write textfile: %w", err))
		} else {
			c.logger.Info("metrics written", "path", c.config.TextfilePath)
		}
	}

	if c.config.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()

		pusher := push.New(c.config.PushgatewayURL, c.config.JobName).Gatherer(c.registry).Client(c.client)
		if err := pusher.PushContext(pushCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics: push: %w", err))
		} else {
			c.logger.Info("metrics pushed", "url", c.config.PushgatewayURL, "job", c.config.JobName)
		}
	}

	return errors.Join(errs...)
}

// Registry exposes the registry for tests.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
