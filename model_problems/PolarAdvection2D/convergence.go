package PolarAdvection2D

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gobsl/InputParameters"
)

// ConvergenceStudy collects the final error of one case over successive
// refinements
type ConvergenceStudy struct {
	Title  string
	NumPTS []int
	DT     []float64
	MaxErr []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{Title: title}
}

func (cs *ConvergenceStudy) Add(numPTS int, dt, maxErr float64) {
	cs.NumPTS = append(cs.NumPTS, numPTS)
	cs.DT = append(cs.DT, dt)
	cs.MaxErr = append(cs.MaxErr, maxErr)
}

// Orders are the observed orders between consecutive refinements, with the
// mesh spacing taken as the inverse square root of the number of points
func (cs *ConvergenceStudy) Orders() (orders []float64) {
	for i := 1; i < len(cs.NumPTS); i++ {
		var (
			hRatio = math.Sqrt(float64(cs.NumPTS[i]) / float64(cs.NumPTS[i-1]))
		)
		orders = append(orders, math.Log(cs.MaxErr[i-1]/cs.MaxErr[i])/math.Log(hRatio))
	}
	return
}

func (cs *ConvergenceStudy) WriteCSV(w io.Writer) (err error) {
	var (
		cw     = csv.NewWriter(w)
		orders = cs.Orders()
	)
	if err = cw.Write([]string{"title", "numPTS", "dt", "maxErr", "order"}); err != nil {
		return
	}
	for i := range cs.NumPTS {
		order := ""
		if i > 0 {
			order = strconv.FormatFloat(orders[i-1], 'f', 3, 64)
		}
		if err = cw.Write([]string{
			cs.Title,
			strconv.Itoa(cs.NumPTS[i]),
			strconv.FormatFloat(cs.DT[i], 'g', -1, 64),
			strconv.FormatFloat(cs.MaxErr[i], 'e', 6, 64),
			order,
		}); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Title = %s\n", cs.Title)
	orders := cs.Orders()
	for i := range cs.NumPTS {
		if i == 0 {
			fmt.Printf("%d, %v, %v\n", cs.NumPTS[i], cs.DT[i], cs.MaxErr[i])
			continue
		}
		fmt.Printf("%d, %v, %v, order = %5.2f\n", cs.NumPTS[i], cs.DT[i], cs.MaxErr[i], orders[i-1])
	}
}

// RunConvergenceStudy runs the case levels times, doubling the cells in
// both directions and halving the time step each time
func RunConvergenceStudy(ip *InputParameters.AdvectionParameters, levels int,
	log logrus.FieldLogger) (cs *ConvergenceStudy, err error) {
	if levels < 2 {
		err = fmt.Errorf("a convergence study needs at least two levels, have %d", levels)
		return
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	cs = NewConvergenceStudy(ip.Title)
	lp := *ip
	for level := 0; level < levels; level++ {
		var c *PolarAdvection
		if c, err = NewPolarAdvection(&lp, log.WithField("level", level)); err != nil {
			return nil, err
		}
		cs.Add(c.Mesh.Size(), lp.DT, c.Run())
		lp.NR, lp.NTheta, lp.DT = 2*lp.NR, 2*lp.NTheta, lp.DT/2
	}
	return
}
