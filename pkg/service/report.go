package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
)

// ReportService prints a step's history.
type ReportService struct {
	*Env
}

// NewReportService creates a new report service
func NewReportService(env *Env) *ReportService {
	return &ReportService{Env: env}
}

// Totals sums a report.
type Totals struct {
	Days   int `json:"days"`
	Active int `json:"activeDays"`
	Count  int `json:"count"`
	Kudos  int `json:"kudos"`
}

// Summarize adds up a report's data.
func Summarize(data []api.StepDatum) Totals {
	var t Totals
	for _, d := range data {
		t.Days++
		if d.Count > 0 || d.Kudos > 0 {
			t.Active++
		}
		t.Count += d.Count.Int()
		t.Kudos += d.Kudos.Int()
	}
	return t
}

// Show prints the data of stepID over period.
func (s *ReportService) Show(ctx context.Context, stepID, period string) error {
	p, ok := api.ParsePeriod(period)
	if !ok {
		return fmt.Errorf("invalid period %q: use week, month or year", period)
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var report *api.Report
	if err := s.call(ctx, "Failed to load report", func(ctx context.Context) error {
		var err error
		report, err = s.API.GetReport(ctx, stepID, p)
		return err
	}); err != nil {
		return err
	}

	totals := Summarize(report.TargetStepData)
	rows := make([][]string, 0, len(report.TargetStepData))
	for _, d := range report.TargetStepData {
		rows = append(rows, []string{d.Date, strconv.Itoa(d.Count.Int()), strconv.Itoa(d.Kudos.Int())})
	}

	payload := struct {
		Period api.Period      `json:"period"`
		Data   []api.StepDatum `json:"targetStepData"`
		Totals Totals          `json:"totals"`
	}{p, report.TargetStepData, totals}

	if err := s.Out.List(fmt.Sprintf("Report (%s)", p), payload, []string{"DATE", "COUNT", "KUDOS"}, rows); err != nil {
		return err
	}
	if len(rows) > 0 && s.Out.Format != output.FormatJSON {
		s.Out.Info("%d active day%s of %d, total %d, kudos %d",
			totals.Active, pluralize(totals.Active), totals.Days, totals.Count, totals.Kudos)
	}
	return nil
}
