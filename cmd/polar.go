/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gobsl/InputParameters"
	"github.com/notargets/gobsl/model_problems/PolarAdvection2D"
	"github.com/notargets/gobsl/utils"
)

const exampleFile = `
########################################
Title: "Rotation"
Mapping: Czarny # Can be Circular
Epsilon: 0.3
Elongation: 1.4
Domain: PseudoCartesian # Can be Physical
TimeStepper: RK4 # Euler, RK2, RK3, RK4, LSRK4 or CrankNicolson
NR: 32
NTheta: 64
DT: 0.05
FinalTime: 1
Advection: Rotation # Can be Translation, with Velocity: [vx, vy]
Omega: 6.283185307179586
InitialCondition:
   CenterX: 0.3
   CenterY: 0.1
   Sigma: 0.15
########################################
`

// PolarCmd represents the polar command
var PolarCmd = &cobra.Command{
	Use:   "polar",
	Short: "Advect a gaussian on a polar mesh and compare with the exact solution",
	Long: `
Advects a gaussian by a rigid rotation around the O-point or a uniform translation
on a circular or Czarny mapped polar mesh, reporting the error to the exact solution.

gobsl polar -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err    error
			ip     *InputParameters.AdvectionParameters
			icFile string
		)
		fmt.Println("polar called")
		if icFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		if ip, err = processPolarInput(icFile, viper.GetString("stepper")); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		ip.Print()
		if _, err = RunPolar(ip, logrus.StandardLogger()); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(PolarCmd)
	PolarCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Mapping\n\t- TimeStepper")
}

// processPolarInput starts from the defaults, which an empty file name keeps
func processPolarInput(icFile, stepper string) (ip *InputParameters.AdvectionParameters, err error) {
	var data []byte
	ip = InputParameters.NewAdvectionParameters()
	if len(icFile) != 0 {
		if data, err = os.ReadFile(icFile); err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, err
		}
	}
	if len(stepper) != 0 {
		ip.TimeStepper = stepper
		if err = ip.Validate(); err != nil {
			return nil, err
		}
	}
	return
}

func RunPolar(ip *InputParameters.AdvectionParameters, log logrus.FieldLogger) (maxErr float64, err error) {
	var c *PolarAdvection2D.PolarAdvection
	if c, err = PolarAdvection2D.NewPolarAdvection(ip, log); err != nil {
		return
	}
	maxErr = c.Run()
	log.WithFields(logrus.Fields{
		"steps":  c.Steps,
		"time":   c.Time,
		"error":  maxErr,
		"memory": utils.GetMemUsage(),
	}).Info("polar advection done")
	return
}
