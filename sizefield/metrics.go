package sizefield

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	fieldIDLabel   = "field_id"
	dimensionLabel = "dimension"
)

var (
	cellsAllocated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sizefield_cells_allocated",
		Help: "The number of grading cells allocated.",
	}, []string{
		fieldIDLabel,
	})

	constraintsImposed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sizefield_constraints_imposed",
		Help: "The number of size constraints recorded in cells.",
	}, []string{
		fieldIDLabel,
	})

	classifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "sizefield_find_inner_boxes_duration",
		Help: "The time to classify cells against the advancing front.",
	}, []string{
		dimensionLabel,
	})
)

func fieldLabels(id string) prometheus.Labels {
	return prometheus.Labels{fieldIDLabel: id}
}

func dimensionLabels(dim int) prometheus.Labels {
	return prometheus.Labels{dimensionLabel: strconv.Itoa(dim)}
}
