package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brandonleon/carbsmart/internal/app"
	"github.com/brandonleon/carbsmart/internal/domain/dto"
	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/service"
)

type planOptions struct {
	total    float64
	tare     float64
	panID    int64
	carbs    float64
	minGrams float64
	maxGrams float64
	asJSON   bool
}

func newPlanCommand(v *viper.Viper) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a serving plan",
		Long: `Compute a serving plan from the measured weight of a dish.

The tare weight is given with --tare, or looked up from a registered pan
with --pan (which opens the configured pan store).`,
		Example: `  carbsmart plan --total 1500 --tare 500 --carbs 120
  carbsmart plan --total 3200 --pan 1 --carbs 95 --min 250 --max 350`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(v)
			if !cmd.Flags().Changed("min") {
				opts.minGrams = cfg.Planner.DefaultMinGrams
			}
			if !cmd.Flags().Changed("max") {
				opts.maxGrams = cfg.Planner.DefaultMaxGrams
			}

			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("pan") {
				plan, err := service.ComputePlan(model.PlanInput{
					GrossWeightGrams: opts.total,
					TareWeightGrams:  opts.tare,
					TotalCarbs:       opts.carbs,
					TargetMinGrams:   opts.minGrams,
					TargetMaxGrams:   opts.maxGrams,
				}, cfg.Planner.MaxServings)
				if err != nil {
					return fmt.Errorf("cannot plan: %w", err)
				}
				return printPlan(out, plan, nil, opts.asJSON)
			}

			ctx := cmd.Context()
			a, err := app.InitializeCore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(ctx) }()

			plan, pan, err := a.Services.Plans.PlanForPan(ctx, service.PanPlanRequest{
				PanID:            opts.panID,
				GrossWeightGrams: opts.total,
				TotalCarbs:       opts.carbs,
				TargetMinGrams:   opts.minGrams,
				TargetMaxGrams:   opts.maxGrams,
			})
			if err != nil {
				return fmt.Errorf("cannot plan: %w", err)
			}
			return printPlan(out, plan, &pan, opts.asJSON)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.total, "total", 0, "total weight of the dish including the pan, in grams")
	f.Float64Var(&opts.tare, "tare", 0, "weight of the empty pan, in grams")
	f.Int64Var(&opts.panID, "pan", 0, "id of a registered pan")
	f.Float64Var(&opts.carbs, "carbs", 0, "total carbohydrates in the dish, in grams")
	f.Float64Var(&opts.minGrams, "min", 0, "smallest acceptable serving, in grams")
	f.Float64Var(&opts.maxGrams, "max", 0, "largest acceptable serving, in grams")
	f.BoolVar(&opts.asJSON, "json", false, "print the plan as JSON")

	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("carbs")
	cmd.MarkFlagsOneRequired("tare", "pan")
	cmd.MarkFlagsMutuallyExclusive("tare", "pan")

	return cmd
}

func printPlan(w io.Writer, plan model.Plan, pan *model.Pan, asJSON bool) error {
	if asJSON {
		if pan != nil {
			return writeJSON(w, dto.CalcResponse{Plan: plan, Pan: *pan})
		}
		return writeJSON(w, plan)
	}

	if pan != nil {
		fmt.Fprintf(w, "Pan:               %s, %.2f g\n", pan.DisplayName(), pan.WeightGrams)
	}
	fmt.Fprintf(w, "Net weight:        %.1f g\n", plan.NetWeightGrams)
	fmt.Fprintf(w, "Servings:          %d\n", plan.Servings)
	fmt.Fprintf(w, "Serving weight:    %.1f g\n", plan.ServingWeightGrams)
	fmt.Fprintf(w, "Carbs per serving: %.1f g\n", plan.CarbsPerServing)
	return nil
}
