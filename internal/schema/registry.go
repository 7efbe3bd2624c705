// Package schema is the static description of every logical table: ordered
// column lists, primary keys and field descriptors. The store adapter, the
// workbook adapter and the form-driving UI layer all read table shape from
// here so they cannot diverge. Pure data, no I/O.
package schema

// Kind tags a field descriptor so generic consumers (form builders, cell
// coercion) can dispatch without stringly-typed checks.
type Kind int

const (
	Text Kind = iota
	Decimal
	Date
	Integer
	Enum
)

type Field struct {
	Name     string
	Kind     Kind
	Options  []string // Enum only
	Required bool
	// Derived fields are owned by the recalculator; a user edit to one is
	// overwritten on the next recompute.
	Derived bool
}

type Table struct {
	Name       string
	PrimaryKey string
	Fields     []Field
}

// Columns returns the ordered column names, primary key first. Sheet headers
// and insert statements both follow this order.
func (t Table) Columns() []string {
	cols := make([]string, 0, len(t.Fields)+1)
	cols = append(cols, t.PrimaryKey)
	for _, f := range t.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// FieldByName returns the descriptor for a non-key column.
func (t Table) FieldByName(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var registry = []Table{
	{
		Name:       "Debts",
		PrimaryKey: "DebtID",
		Fields: []Field{
			{Name: "Creditor", Kind: Text, Required: true},
			{Name: "Amount", Kind: Decimal, Required: true},
			{Name: "MinimumPayment", Kind: Decimal},
			{Name: "SnowballPayment", Kind: Decimal},
			{Name: "InterestRate", Kind: Decimal},
			{Name: "DueDate", Kind: Date},
			{Name: "Status", Kind: Enum, Options: []string{"Open", "Closed", "Current", "In Collection", "Paid Off"}},
		},
	},
	{
		Name:       "Accounts",
		PrimaryKey: "AccountID",
		Fields: []Field{
			{Name: "AccountName", Kind: Text, Required: true},
			{Name: "Balance", Kind: Decimal, Derived: true},
			{Name: "AccountType", Kind: Enum, Options: []string{"Checking", "Savings", "Credit Card", "Loan", "Investment"}},
			{Name: "Status", Kind: Enum, Options: []string{"Open", "Closed", "Current", "Active", "Inactive"}},
		},
	},
	{
		Name:       "Payments",
		PrimaryKey: "PaymentID",
		Fields: []Field{
			{Name: "DebtID", Kind: Integer},
			{Name: "Amount", Kind: Decimal, Required: true},
			{Name: "PaymentDate", Kind: Date, Required: true},
			{Name: "PaymentMethod", Kind: Text},
			{Name: "Category", Kind: Text},
		},
	},
	{
		Name:       "Goals",
		PrimaryKey: "GoalID",
		Fields: []Field{
			{Name: "GoalName", Kind: Text, Required: true},
			{Name: "TargetAmount", Kind: Decimal, Required: true},
			{Name: "CurrentAmount", Kind: Decimal, Derived: true},
			{Name: "TargetDate", Kind: Date},
			{Name: "Status", Kind: Enum, Options: []string{"Planned", "In Progress", "Completed"}, Derived: true},
			{Name: "Notes", Kind: Text},
		},
	},
	{
		Name:       "Assets",
		PrimaryKey: "AssetID",
		Fields: []Field{
			{Name: "AssetName", Kind: Text, Required: true},
			{Name: "Value", Kind: Decimal, Required: true},
			{Name: "Category", Kind: Text},
			{Name: "Status", Kind: Enum, Options: []string{"Active", "Sold", "Disposed"}},
		},
	},
	{
		Name:       "Revenue",
		PrimaryKey: "RevenueID",
		Fields: []Field{
			{Name: "Amount", Kind: Decimal, Required: true},
			{Name: "DateReceived", Kind: Date, Required: true},
			{Name: "Source", Kind: Text},
			{Name: "AllocatedTo", Kind: Integer},
			{Name: "AllocationType", Kind: Enum, Options: []string{"Account", "Debt", "Other"}},
		},
	},
	{
		Name:       "Categories",
		PrimaryKey: "CategoryID",
		Fields: []Field{
			{Name: "CategoryName", Kind: Text, Required: true},
		},
	},
}

// Tables returns every registered table in the fixed sync order.
func Tables() []Table {
	out := make([]Table, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a table by name.
func Lookup(name string) (Table, bool) {
	for _, t := range registry {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// PredefinedCategories seeds the Categories table on first run.
var PredefinedCategories = []string{
	"Housing", "Utilities", "Groceries", "Transportation", "Healthcare",
	"Insurance", "Debt Payment", "Savings", "Investments", "Education",
	"Entertainment", "Dining Out", "Shopping", "Personal Care", "Gifts/Donations",
	"Miscellaneous", "Salary", "Freelance Income", "Bonus", "Refund", "Interest Income",
}
