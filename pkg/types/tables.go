package types

// Standard table names for Archive.GetTable.
const (
	PlansTable = "plans"
	JobsTable  = "jobs"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	PlansTable,
	JobsTable,
}
