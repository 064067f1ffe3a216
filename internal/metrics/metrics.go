// Package metrics собирает prometheus-метрики сервиса:
// регистрации, попытки входа и переключения пользовательских списков.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/wheretodine/internal/models"
)

// Collector регистрирует и инкрементирует счетчики сервиса.
type Collector struct {
	registrations prometheus.Counter
	logins        *prometheus.CounterVec
	listToggles   *prometheus.CounterVec
}

// NewCollector создает Collector и регистрирует метрики в reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wheretodine_registrations_total",
			Help: "Total number of successful user registrations",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wheretodine_logins_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),
		listToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wheretodine_list_toggles_total",
			Help: "Total number of list toggles by list and action",
		}, []string{"list", "action"}),
	}

	reg.MustRegister(c.registrations, c.logins, c.listToggles)
	return c
}

// RecordRegistration учитывает успешную регистрацию.
func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// RecordLogin учитывает попытку входа.
func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

// RecordListToggle учитывает переключение элемента списка.
func (c *Collector) RecordListToggle(list models.ListName, action string) {
	c.listToggles.WithLabelValues(string(list), action).Inc()
}
