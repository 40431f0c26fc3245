package InputParameters

import (
	"fmt"
	"math"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gobsl/timestepper"
)

// Parameters obtained from the YAML input file
type AdvectionParameters struct {
	Title            string         `yaml:"Title"`
	Mapping          string         `yaml:"Mapping"` // Circular or Czarny
	Epsilon          float64        `yaml:"Epsilon"` // Czarny inverse aspect ratio
	Elongation       float64        `yaml:"Elongation"`
	Domain           string         `yaml:"Domain"` // Physical or PseudoCartesian
	TimeStepper      string         `yaml:"TimeStepper"`
	SplineDegree     int            `yaml:"SplineDegree"`
	NR               int            `yaml:"NR"` // Radial cells
	NTheta           int            `yaml:"NTheta"`
	RMin             float64        `yaml:"RMin"`
	RMax             float64        `yaml:"RMax"`
	DT               float64        `yaml:"DT"`
	FinalTime        float64        `yaml:"FinalTime"`
	Advection        string         `yaml:"Advection"` // Rotation or Translation
	Omega            float64        `yaml:"Omega"`
	Velocity         [2]float64     `yaml:"Velocity"`
	InitialCondition GaussianParams `yaml:"InitialCondition"`
	RThetaFrame      bool           `yaml:"RThetaFrame"` // Supply the advection field in (r, theta)
	NormalisedRTheta bool           `yaml:"NormalisedRTheta"`
	LogEvery         int            `yaml:"LogEvery"`
}

// GaussianParams are keyed CenterX and CenterY since YAML 1.1 reads a bare Y
// as a boolean
type GaussianParams struct {
	CenterX float64 `yaml:"CenterX"`
	CenterY float64 `yaml:"CenterY"`
	Sigma   float64 `yaml:"Sigma"`
}

// NewAdvectionParameters holds the defaults completed by Parse
func NewAdvectionParameters() *AdvectionParameters {
	return &AdvectionParameters{
		Title:            "Rotation",
		Mapping:          "Czarny",
		Epsilon:          0.3,
		Elongation:       1.4,
		Domain:           "PseudoCartesian",
		TimeStepper:      "RK4",
		SplineDegree:     3,
		NR:               32,
		NTheta:           64,
		RMax:             1,
		DT:               0.05,
		FinalTime:        1,
		Advection:        "Rotation",
		Omega:            2 * math.Pi,
		InitialCondition: GaussianParams{CenterX: 0.3, CenterY: 0.1, Sigma: 0.15},
		LogEvery:         10,
	}
}

func (ip *AdvectionParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	return ip.Validate()
}

func (ip *AdvectionParameters) Validate() (err error) {
	switch {
	case ip.NR < 1 || ip.NTheta < 1:
		err = fmt.Errorf("need at least one cell in each direction, have NR = %d, NTheta = %d", ip.NR, ip.NTheta)
	case ip.SplineDegree < 1:
		err = fmt.Errorf("spline degree must be positive, have %d", ip.SplineDegree)
	case ip.RMin < 0 || !(ip.RMax > ip.RMin):
		err = fmt.Errorf("invalid radial range [%g, %g]", ip.RMin, ip.RMax)
	case !(ip.DT > 0) || ip.FinalTime < 0:
		err = fmt.Errorf("invalid time stepping, DT = %g, FinalTime = %g", ip.DT, ip.FinalTime)
	case !(ip.InitialCondition.Sigma > 0):
		err = fmt.Errorf("gaussian width must be positive, have %g", ip.InitialCondition.Sigma)
	}
	if err != nil {
		return
	}
	if _, err = ip.StepperType(); err != nil {
		return
	}
	switch strings.ToLower(ip.Mapping) {
	case "circular", "czarny":
	default:
		return fmt.Errorf("unknown mapping %q, want Circular or Czarny", ip.Mapping)
	}
	switch strings.ToLower(ip.Domain) {
	case "physical", "pseudocartesian":
	default:
		return fmt.Errorf("unknown advection domain %q, want Physical or PseudoCartesian", ip.Domain)
	}
	switch strings.ToLower(ip.Advection) {
	case "rotation", "translation":
	default:
		return fmt.Errorf("unknown advection %q, want Rotation or Translation", ip.Advection)
	}
	return
}

func (ip *AdvectionParameters) StepperType() (timestepper.StepperType, error) {
	return timestepper.ParseStepperType(ip.TimeStepper)
}

// Steps is the number of time steps reaching FinalTime, the last one
// possibly shorter
func (ip *AdvectionParameters) Steps() int {
	return int(math.Ceil(ip.FinalTime/ip.DT - 1.e-12))
}

func (ip *AdvectionParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Mapping\n", ip.Mapping)
	if strings.EqualFold(ip.Mapping, "czarny") {
		fmt.Printf("%8.5f\t\t= Epsilon\n", ip.Epsilon)
		fmt.Printf("%8.5f\t\t= Elongation\n", ip.Elongation)
	}
	fmt.Printf("[%s]\t= Advection Domain\n", ip.Domain)
	fmt.Printf("[%s]\t\t\t= Time Stepper\n", ip.TimeStepper)
	fmt.Printf("[%d]\t\t\t\t= Spline Degree\n", ip.SplineDegree)
	fmt.Printf("[%d x %d]\t\t\t= NR x NTheta\n", ip.NR, ip.NTheta)
	fmt.Printf("[%g, %g]\t\t\t= Radial Range\n", ip.RMin, ip.RMax)
	fmt.Printf("%8.5f\t\t= DT\n", ip.DT)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	switch strings.ToLower(ip.Advection) {
	case "rotation":
		fmt.Printf("[%s]\t\t= Advection, Omega = %g\n", ip.Advection, ip.Omega)
	default:
		fmt.Printf("[%s]\t\t= Advection, Velocity = %v\n", ip.Advection, ip.Velocity)
	}
	fmt.Printf("%v\t= Initial Gaussian (CenterX, CenterY, Sigma)\n", ip.InitialCondition)
	if ip.RThetaFrame {
		fmt.Printf("[%v]\t\t\t= Normalised (r, theta) conversion\n", ip.NormalisedRTheta)
	}
}
