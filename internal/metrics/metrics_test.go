package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/wheretodine/internal/models"
)

func TestCollector_RecordRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration()
	c.RecordRegistration()

	assert.Equal(t, float64(2), testutil.ToFloat64(c.registrations))
}

func TestCollector_RecordLogin(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(true)
	c.RecordLogin(true)
	c.RecordLogin(false)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.logins.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.logins.WithLabelValues("failure")))
}

func TestCollector_RecordListToggle(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordListToggle(models.ListFavorites, "added")
	c.RecordListToggle(models.ListFavorites, "removed")
	c.RecordListToggle(models.ListVisitLater, "added")

	assert.Equal(t, float64(1), testutil.ToFloat64(c.listToggles.WithLabelValues("favorites", "added")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.listToggles.WithLabelValues("favorites", "removed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.listToggles.WithLabelValues("visit_later", "added")))
}
