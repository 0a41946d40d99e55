package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names read from an .xlsx workbook. Matching is case-insensitive.
const (
	SheetClients   = "clients"
	SheetProjects  = "projects"
	SheetRisks     = "risks"
	SheetResources = "resources"
)

// ParseProjectsCSV reads projects from CSV with a header row whose column
// names match the JSON field names (start_date, baseline_budget, ...).
func ParseProjectsCSV(r io.Reader) (*PortfolioSchema, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	projects, err := projectsFromRows(rows)
	if err != nil {
		return nil, err
	}
	return &PortfolioSchema{Projects: projects}, nil
}

// LoadPortfolioXLSX reads the clients, projects, risks and resources
// sheets of a workbook. Missing sheets other than projects are treated as
// empty. A workbook without a projects sheet is read from its first sheet
// unless that sheet is one of the other named sheets.
func LoadPortfolioXLSX(path string) (*PortfolioSchema, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := make(map[string]string)
	for _, name := range f.GetSheetList() {
		sheets[strings.ToLower(strings.TrimSpace(name))] = name
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}

	readSheet := func(key string) ([][]string, error) {
		name, ok := sheets[key]
		if !ok {
			return nil, nil
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read rows of %s: %w", name, err)
		}
		return rows, nil
	}

	projectRows, err := readSheet(SheetProjects)
	if err != nil {
		return nil, err
	}
	if projectRows == nil {
		first := f.GetSheetList()[0]
		switch strings.ToLower(strings.TrimSpace(first)) {
		case SheetClients, SheetRisks, SheetResources:
		default:
			if projectRows, err = f.GetRows(first); err != nil {
				return nil, fmt.Errorf("read rows of %s: %w", first, err)
			}
		}
	}
	clientRows, err := readSheet(SheetClients)
	if err != nil {
		return nil, err
	}
	riskRows, err := readSheet(SheetRisks)
	if err != nil {
		return nil, err
	}
	resourceRows, err := readSheet(SheetResources)
	if err != nil {
		return nil, err
	}

	var schema PortfolioSchema
	var errs []error
	if schema.Clients, err = clientsFromRows(clientRows); err != nil {
		errs = append(errs, err)
	}
	if schema.Projects, err = projectsFromRows(projectRows); err != nil {
		errs = append(errs, err)
	}
	if schema.Risks, err = risksFromRows(riskRows); err != nil {
		errs = append(errs, err)
	}
	if schema.Resources, err = resourcesFromRows(resourceRows); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &schema, nil
}

// table gives named access to the data rows under a header row.
type table struct {
	name   string
	header map[string]int
	rows   [][]string
	errs   []error
}

func newTable(name string, rows [][]string) *table {
	t := &table{name: name, header: make(map[string]int)}
	if len(rows) == 0 {
		return t
	}
	for i, h := range rows[0] {
		t.header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, r := range rows[1:] {
		if isBlankRow(r) {
			continue
		}
		t.rows = append(t.rows, r)
	}
	return t
}

func (t *table) str(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) floatCol(n int, row []string, col string) float64 {
	s := t.str(row, col)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		t.errs = append(t.errs, fmt.Errorf("%s row %d: column %s: %q is not a number", t.name, n, col, s))
		return 0
	}
	return v
}

func (t *table) intCol(n int, row []string, col string) int {
	s := t.str(row, col)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		t.errs = append(t.errs, fmt.Errorf("%s row %d: column %s: %q is not an integer", t.name, n, col, s))
	}
	return v
}

func (t *table) err() error {
	return errors.Join(t.errs...)
}

func projectsFromRows(rows [][]string) ([]ProjectImport, error) {
	t := newTable(SheetProjects, rows)
	out := make([]ProjectImport, 0, len(t.rows))
	for i, r := range t.rows {
		n := i + 2
		out = append(out, ProjectImport{
			ID:                   t.str(r, "id"),
			ClientID:             t.str(r, "client_id"),
			Name:                 t.str(r, "name"),
			Region:               t.str(r, "region"),
			Sector:               t.str(r, "sector"),
			StartDate:            t.str(r, "start_date"),
			EndDate:              t.str(r, "end_date"),
			BaselineBudget:       t.floatCol(n, r, "baseline_budget"),
			CurrentForecast:      t.floatCol(n, r, "current_forecast"),
			ActualSpend:          t.floatCol(n, r, "actual_spend"),
			BaselineScheduleDays: t.intCol(n, r, "baseline_schedule_days"),
			ForecastScheduleDays: t.intCol(n, r, "forecast_schedule_days"),
			PercentComplete:      t.floatCol(n, r, "percent_complete"),
			SafetyIncidents:      t.intCol(n, r, "safety_incidents"),
			Status:               t.str(r, "status"),
		})
	}
	return out, t.err()
}

func clientsFromRows(rows [][]string) ([]ClientImport, error) {
	t := newTable(SheetClients, rows)
	out := make([]ClientImport, 0, len(t.rows))
	for i, r := range t.rows {
		n := i + 2
		out = append(out, ClientImport{
			ID:                t.str(r, "id"),
			Name:              t.str(r, "name"),
			SatisfactionScore: t.floatCol(n, r, "satisfaction_score"),
			PipelineValue:     t.floatCol(n, r, "pipeline_value"),
			StrategicPriority: t.intCol(n, r, "strategic_priority"),
		})
	}
	return out, t.err()
}

func risksFromRows(rows [][]string) ([]RiskImport, error) {
	t := newTable(SheetRisks, rows)
	out := make([]RiskImport, 0, len(t.rows))
	for i, r := range t.rows {
		n := i + 2
		out = append(out, RiskImport{
			ID:               t.str(r, "id"),
			ProjectID:        t.str(r, "project_id"),
			Category:         t.str(r, "category"),
			Probability:      t.floatCol(n, r, "probability"),
			ImpactCost:       t.floatCol(n, r, "impact_cost"),
			ImpactDays:       t.floatCol(n, r, "impact_days"),
			MitigationStatus: t.str(r, "mitigation_status"),
		})
	}
	return out, t.err()
}

func resourcesFromRows(rows [][]string) ([]ResourceImport, error) {
	t := newTable(SheetResources, rows)
	out := make([]ResourceImport, 0, len(t.rows))
	for i, r := range t.rows {
		out = append(out, ResourceImport{
			ID:             t.str(r, "id"),
			Name:           t.str(r, "name"),
			Role:           t.str(r, "role"),
			Region:         t.str(r, "region"),
			SkillTags:      t.str(r, "skill_tags"),
			UtilizationPct: t.floatCol(i+2, r, "utilization_pct"),
		})
	}
	return out, t.err()
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
