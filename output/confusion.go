package output

import (
	"bytes"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/eval"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg"
	"image/color"
	"strconv"
)

// confusionGrid lays a confusion matrix out with predicted classes along x and true classes along
// y, the first true class at the top.
type confusionGrid struct {
	cm eval.ConfusionMatrix
}

func (g confusionGrid) Dims() (c, r int)   { return 2, 2 }
func (g confusionGrid) Z(c, r int) float64 { return float64(g.cm[1-r][c]) }
func (g confusionGrid) X(c int) float64    { return float64(c) }
func (g confusionGrid) Y(r int) float64    { return float64(r) }

// ConfusionMatrixPNG renders a confusion matrix as a blue heat map annotated with counts.
func ConfusionMatrixPNG(cm eval.ConfusionMatrix, names [2]string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Confusion Matrix"
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "True"

	pal, err := brewer.GetPalette(brewer.TypeSequential, "Blues", 9)
	if err != nil {
		return nil, errors.Wrap(err, "building palette")
	}
	g := confusionGrid{cm: cm}
	hm := plotter.NewHeatMap(g, pal)
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	var labels plotter.XYLabels
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			labels.XYs = append(labels.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			labels.Labels = append(labels.Labels, strconv.Itoa(cm[1-r][c]))
		}
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, errors.Wrap(err, "labelling cells")
	}
	mid := (hm.Min + hm.Max) / 2
	for i, xy := range labels.XYs {
		l.TextStyle[i].XAlign = text.XCenter
		l.TextStyle[i].YAlign = text.YCenter
		l.TextStyle[i].Color = color.Black
		if g.Z(int(xy.X), int(xy.Y)) > mid {
			l.TextStyle[i].Color = color.White
		}
	}
	p.Add(l)

	p.X.Tick.Marker = plot.ConstantTicks{{Value: 0, Label: names[0]}, {Value: 1, Label: names[1]}}
	p.Y.Tick.Marker = plot.ConstantTicks{{Value: 0, Label: names[1]}, {Value: 1, Label: names[0]}}

	w, err := p.WriterTo(4*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, errors.Wrap(err, "rendering confusion matrix")
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "encoding confusion matrix")
	}
	return buf.Bytes(), nil
}
