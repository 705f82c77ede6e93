package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"college-predictor/domain"
	"college-predictor/service"
)

var (
	predictRank           int
	predictCategory       string
	predictGender         string
	predictCity           string
	predictInstitutes     []string
	predictBranches       []string
	predictMaxDistance    int
	predictMaxClosingRank int
	predictPriority       string
	predictSort           string
	predictFilter         string
	predictCSV            string
	predictRelax          bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Request recommendations for one rank",
	Long: `Request recommendations for one rank and print them as a table.

Examples:
  college-predictor predict --rank 3000 --category OPEN --gender Gender-Neutral
  college-predictor predict --rank 12000 --category OBC-NCL --gender Female-only \
      --city Chennai --max-distance 500 --institute NIT --branch Computer
  college-predictor predict --rank 3000 --category OPEN --gender Male-only --sort rank --csv out.csv`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)

	f := predictCmd.Flags()
	f.IntVarP(&predictRank, "rank", "r", 0, "JEE rank (required)")
	f.StringVarP(&predictCategory, "category", "c", "", "seat category, e.g. OPEN, OBC-NCL (required)")
	f.StringVarP(&predictGender, "gender", "g", domain.GenderNeutral, "Male-only, Female-only or Gender-Neutral")
	f.StringVar(&predictCity, "city", "", "home city, needed for --max-distance")
	f.StringSliceVar(&predictInstitutes, "institute", domain.DefaultInstitutes, "preferred institute types")
	f.StringSliceVar(&predictBranches, "branch", nil, "preferred branches")
	f.IntVar(&predictMaxDistance, "max-distance", 0, "maximum distance from home in km (0: no limit)")
	f.IntVar(&predictMaxClosingRank, "max-closing-rank", 0, "ignore colleges closing above this rank (0: no limit)")
	f.StringVar(&predictPriority, "priority", "", "rank, distance or institute")
	f.StringVarP(&predictSort, "sort", "s", string(domain.SortByScore), "score, rank or distance")
	f.StringVar(&predictFilter, "filter", domain.InstituteAll, "show only one institute type")
	f.StringVar(&predictCSV, "csv", "", "also write the view as CSV to this path")
	f.BoolVar(&predictRelax, "relax", false, "drop city, institute and branch preferences")

	_ = predictCmd.MarkFlagRequired("rank")
	_ = predictCmd.MarkFlagRequired("category")
}

func runPredict(cmd *cobra.Command, _ []string) error {
	input := predictInput()
	if err := validator.New().Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "invalid %s: failed %q\n", fe.Field(), fe.Tag())
			}
			return errors.New("invalid input")
		}
		return err
	}
	if predictRelax {
		input = service.RelaxFilters(input)
	}

	client := newRecommendationClient(cfg)
	client.GetRecommendations(commandContext(cmd), input)

	state := client.Snapshot()
	results := service.BuildResults(state, service.ParseSortKey(predictSort), predictFilter)
	printResults(cmd.OutOrStdout(), results)

	if predictCSV != "" {
		if err := os.WriteFile(predictCSV, service.ExportCSV(results.Recommendations), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", predictCSV, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nwrote %s\n", predictCSV)
	}
	return nil
}

func predictInput() domain.StudentInput {
	input := domain.StudentInput{
		Rank:                predictRank,
		Category:            predictCategory,
		Gender:              predictGender,
		HomeCity:            predictCity,
		PreferredInstitutes: predictInstitutes,
		PreferredBranches:   predictBranches,
		PriorityPreference:  predictPriority,
	}
	if predictMaxDistance > 0 {
		d := predictMaxDistance
		input.MaxDistanceKm = &d
	}
	if predictMaxClosingRank > 0 {
		r := predictMaxClosingRank
		input.MaxClosingRank = &r
	}
	return input.Clone()
}

func printResults(w io.Writer, results service.Results) {
	fmt.Fprintf(w, "outcome: %s\n", results.Outcome)
	if results.Message != "" {
		fmt.Fprintln(w, results.Message)
	}

	s := results.Summary
	fmt.Fprintf(w, "%d colleges (IIT %d, NIT %d, IIIT %d, GFTI %d)\n\n", s.Total, s.IIT, s.NIT, s.IIIT, s.GFTI)

	if len(results.Recommendations) == 0 {
		fmt.Fprintln(w, "No colleges match. Try --relax.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINSTITUTE\tBRANCH\tTYPE\tCLOSING\tDISTANCE\tSCORE")
	for i, r := range results.Recommendations {
		distance := "-"
		if r.DistanceKm != nil {
			distance = strconv.FormatFloat(*r.DistanceKm, 'f', 0, 64) + " km"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%.1f\n",
			i+1, r.InstituteName, r.Branch, r.InstituteType, r.BestClosingRank(), distance, r.RecommendationScore)
	}
	_ = tw.Flush()
}
