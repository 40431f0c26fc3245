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

	"github.com/notargets/gobsl/model_problems/PolarAdvection2D"
)

// ConvergenceCmd represents the convergence command
var ConvergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "Convergence study of the polar advection case",
	Long: `
Runs the polar case at successive refinements, doubling the cells in both
directions and halving the time step, and reports the observed order.

gobsl convergence -I input.yaml -l 3 -o study.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			icFile, csvFile string
			levels          int
			err             error
			cs              *PolarAdvection2D.ConvergenceStudy
		)
		fmt.Println("convergence called")
		icFile, _ = cmd.Flags().GetString("inputConditionsFile")
		csvFile, _ = cmd.Flags().GetString("csvFile")
		levels, _ = cmd.Flags().GetInt("levels")
		ip, err := processPolarInput(icFile, viper.GetString("stepper"))
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		ip.Print()
		if cs, err = PolarAdvection2D.RunConvergenceStudy(ip, levels, logrus.StandardLogger()); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		cs.Print()
		if len(csvFile) != 0 {
			if err = writeStudy(csvFile, cs); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(ConvergenceCmd)
	ConvergenceCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters of the coarsest level")
	ConvergenceCmd.Flags().IntP("levels", "l", 3, "number of refinement levels")
	ConvergenceCmd.Flags().StringP("csvFile", "o", "", "file receiving the study as CSV")
}

func writeStudy(csvFile string, cs *PolarAdvection2D.ConvergenceStudy) (err error) {
	var f *os.File
	if f, err = os.Create(csvFile); err != nil {
		return
	}
	defer f.Close()
	return cs.WriteCSV(f)
}
