package pointcloud

import (
	"fmt"
	"math"

	"github.com/philipparndt/govis/internal/panel"
)

// ScalarQuantity is a named value per point
type ScalarQuantity struct {
	Name    string
	Values  []float64
	Min     float64
	Max     float64
	Mean    float64
	Enabled bool
}

func newScalarQuantity(name string, values []float64) *ScalarQuantity {
	q := &ScalarQuantity{
		Name:   name,
		Values: append([]float64(nil), values...),
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
	}
	for _, v := range q.Values {
		q.Min = math.Min(q.Min, v)
		q.Max = math.Max(q.Max, v)
		q.Mean += v
	}
	if len(q.Values) > 0 {
		q.Mean /= float64(len(q.Values))
	} else {
		q.Min, q.Max = 0, 0
	}
	return q
}

// Normalized maps value i into [0, 1] over the quantity's range
func (q *ScalarQuantity) Normalized(i int) float64 {
	if q.Max == q.Min {
		return 0
	}
	return (q.Values[i] - q.Min) / (q.Max - q.Min)
}

// buildUI returns true when the quantity was toggled
func (q *ScalarQuantity) buildUI(ui panel.UI) bool {
	if !ui.TreeNode(q.Name) {
		return false
	}
	toggled := ui.Checkbox("Enabled", &q.Enabled)
	ui.Text(fmt.Sprintf("min %.4g  max %.4g  mean %.4g", q.Min, q.Max, q.Mean))
	ui.TreePop()
	return toggled
}
