package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog metrics.
var (
	ResearchersTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "researchers_total",
		Help:      "Researchers in the active catalog snapshot",
	})

	ResearchersMapped = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "researchers_mapped",
		Help:      "Researchers whose affiliation resolved to a location",
	})

	CountriesTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "countries_total",
		Help:      "Distinct countries among located researchers",
	})

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog reloads by result",
		},
		[]string{"result"}, // "ok" / "error"
	)
)

func init() {
	prometheus.MustRegister(ResearchersTotal, ResearchersMapped, CountriesTotal, CatalogReloadsTotal)
}

// ObserveCatalog sets the snapshot gauges.
func ObserveCatalog(total, mapped, countries int) {
	ResearchersTotal.Set(float64(total))
	ResearchersMapped.Set(float64(mapped))
	CountriesTotal.Set(float64(countries))
}

// RecordReload counts a reload attempt.
func RecordReload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CatalogReloadsTotal.WithLabelValues(result).Inc()
}
