package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	report "github.com/00001120-alt/refrigerante/internal/calc/report"
	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
	chart "github.com/00001120-alt/refrigerante/internal/chart"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "refpipe",
	Short: "Refrigerant copper line sizing tool",
	Long: `refpipe sizes refrigerant lines over the standard copper tube catalog.

Given a refrigerant, a line type and a load, it evaluates every stocked
tube (velocity, Reynolds number, friction, pressure drop, temperature
loss) and picks the smallest size that meets the design criteria.

Use 'refpipe size --help' for the sizing command.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("refpipe v%s - refrigerant copper line sizing\n", version)
		fmt.Println("Use 'refpipe --help' to see available commands.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of refpipe",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("refpipe v%s\n", version)
	},
}

var refrigerantsCmd = &cobra.Command{
	Use:   "refrigerants",
	Short: "List the supported refrigerants and their properties",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tVAPOR lb/ft3\tLIQUID lb/ft3\tVISCOSITY lb/(ft.s)\tEFFECT BTU/lb")
		for _, ref := range sizing.Refrigerants() {
			fmt.Fprintf(w, "%s\t%.4f\t%.2f\t%.8f\t%.1f\n",
				ref.Code, ref.VaporDensity, ref.LiquidDensity, ref.VaporViscosity, ref.Effect)
		}
		w.Flush()
	},
}

var tubesCmd = &cobra.Command{
	Use:   "tubes",
	Short: "List the copper tube catalog",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NOMINAL\tOD in\tID in\tWALL mm")
		for _, tube := range sizing.CopperTubes() {
			fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\n",
				tube.Nominal, tube.OuterDiameterIn, tube.InnerDiameterIn, tube.WallMM)
		}
		w.Flush()
	},
}

var (
	sizeRefrigerant string
	sizeLine        string
	sizeCapacity    float64
	sizeLength      float64
	sizeRise        float64
	sizeASCII       bool
	sizeKind        string
	sizeChart       string
	sizePDF         string
	sizeXLSX        string
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a refrigerant line against the copper tube catalog",
	Long: `Evaluate every stocked copper tube for the given line and report the
smallest size that keeps the temperature loss and the velocity inside
the design criteria.

Line types follow the catalog wording: liquido (liquid), succion
(suction) and descarga (discharge). English names are accepted too.

Examples:
  # Liquid line for a 5 ton R134a plant with 50 ft of equivalent pipe
  refpipe size -r R134a -l liquido -q 60000 -L 50

  # Suction riser, with an ASCII velocity chart
  refpipe size -r R134a -l succion -q 60000 -L 50 --rise 10 --ascii

  # Same run exported as a PDF report and a PNG chart
  refpipe size -r R134a -l succion -q 60000 -L 50 --rise 10 \
      --pdf sizing.pdf --chart velocity.png`,
	Run: runSize,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(refrigerantsCmd)
	rootCmd.AddCommand(tubesCmd)
	rootCmd.AddCommand(sizeCmd)

	sizeCmd.Flags().StringVarP(&sizeRefrigerant, "refrigerant", "r", "", "Refrigerant code (R22, R134a, R404A, R410A, R507) [required]")
	sizeCmd.Flags().StringVarP(&sizeLine, "line", "l", "", "Line type: liquido, succion or descarga [required]")
	sizeCmd.Flags().Float64VarP(&sizeCapacity, "capacity", "q", 0, "Refrigeration capacity (BTU/h) [required]")
	sizeCmd.Flags().Float64VarP(&sizeLength, "length", "L", 0, "Equivalent length (ft), floored to 1 ft")
	sizeCmd.Flags().Float64Var(&sizeRise, "rise", 0, "Vertical rise (ft), vapor lines only")
	sizeCmd.Flags().BoolVar(&sizeASCII, "ascii", false, "Draw an ASCII chart of the candidates")
	sizeCmd.Flags().StringVar(&sizeKind, "kind", "velocity", "Chart curve: velocity or temp_loss")
	sizeCmd.Flags().StringVar(&sizeChart, "chart", "", "Write a chart image to this path (.png, .svg or .pdf)")
	sizeCmd.Flags().StringVar(&sizePDF, "pdf", "", "Write a PDF report to this path")
	sizeCmd.Flags().StringVar(&sizeXLSX, "xlsx", "", "Write an XLSX workbook to this path")

	sizeCmd.MarkFlagRequired("refrigerant")
	sizeCmd.MarkFlagRequired("line")
	sizeCmd.MarkFlagRequired("capacity")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func runSize(cmd *cobra.Command, args []string) {
	req := sizing.Request{
		Refrigerant:        sizeRefrigerant,
		LineType:           sizeLine,
		CapacityBTUH:       sizeCapacity,
		EquivalentLengthFt: sizeLength,
		VerticalRiseFt:     sizeRise,
	}
	in, err := req.ToInput()
	if err != nil {
		fail(err)
	}
	res, err := sizing.SizeLine(in)
	if err != nil {
		fail(err)
	}

	printResult(res)

	kind, err := chart.ParseKind(sizeKind)
	if err != nil {
		fail(err)
	}
	data := chart.FromResult(res)

	if sizeASCII {
		fmt.Println(chart.DrawASCII(data, kind))
		fmt.Println()
	}
	if sizeChart != "" {
		if err := chart.Export(data, kind, sizeChart); err != nil {
			fail(err)
		}
		fmt.Println("Chart written to", sizeChart)
	}
	if sizePDF != "" {
		f, err := os.Create(sizePDF)
		if err != nil {
			fail(err)
		}
		err = report.WritePDF(f, report.Input{Sizing: req}, res)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fail(err)
		}
		fmt.Println("Report written to", sizePDF)
	}
	if sizeXLSX != "" {
		f, err := os.Create(sizeXLSX)
		if err != nil {
			fail(err)
		}
		err = report.WriteXLSX(f, res)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fail(err)
		}
		fmt.Println("Workbook written to", sizeXLSX)
	}
}

func printResult(res sizing.Result) {
	criteria := sizing.CriteriaFor(res.Input.Line, res.Input.VerticalRiseFt > 0)

	fmt.Println()
	fmt.Printf("%s %s line, %.0f BTU/h over %.0f ft equivalent\n",
		res.Input.Refrigerant, res.Input.Line, res.Input.CapacityBTUH, res.Input.EquivalentLengthFt)
	fmt.Println(strings.Repeat("-", 78))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, " \tNOMINAL\tID in\tV ft/min\tV m/s\tRe\tf\tdP psi\tdT F\tNOTES")
	for i, ev := range res.Evaluations {
		mark := " "
		if i == res.SelectedIndex {
			mark = ">"
		}
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.0f\t%.2f\t%.0f\t%.4f\t%.3f\t%.3f\t%s\n",
			mark, ev.Tube.Nominal, ev.Tube.InnerDiameterIn,
			ev.VelocityFPM, ev.VelocityMS, ev.ReynoldsNumber,
			ev.FrictionFactor, ev.PressureDropPSI, ev.TempLossF,
			strings.Join(ev.Warnings, "; "))
	}
	w.Flush()
	fmt.Println()

	if res.Selected != nil {
		vel := res.Selected.VelocityFPM
		if criteria.VelocityUnit == sizing.UnitMS {
			vel = res.Selected.VelocityMS
		}
		fmt.Printf("Selected: %s (ID %.3f in), %.1f %s, %.3f F temperature loss\n",
			res.Selected.Tube.Nominal, res.Selected.Tube.InnerDiameterIn,
			vel, criteria.VelocityUnit, res.Selected.TempLossF)
		for _, warn := range res.Selected.Warnings {
			fmt.Println("Note:", warn)
		}
	} else {
		fmt.Println("No selection:", sizing.AdvisoryNoSelection)
	}
	fmt.Println()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
