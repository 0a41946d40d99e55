package domain

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectClosed    ProjectStatus = "closed"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"active": true, "on_hold": true, "completed": true, "closed": true,
}

// Risk categories that portfolio-level rules count. Categories are free-form
// tags; these are the ones the engine looks for.
const (
	RiskCategorySchedule = "schedule"
	RiskCategoryScope    = "scope"
	RiskCategoryCost     = "cost"
	RiskCategorySafety   = "safety"
)

type MitigationStatus string

const (
	MitigationOpen       MitigationStatus = "open"
	MitigationInProgress MitigationStatus = "in_progress"
	MitigationClosed     MitigationStatus = "closed"
)

type DecisionStatus string

const (
	DecisionProposed DecisionStatus = "proposed"
	DecisionExecuted DecisionStatus = "executed"
	DecisionRejected DecisionStatus = "rejected"
)
