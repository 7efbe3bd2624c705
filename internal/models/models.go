// Package models holds the gorm table definitions. Column names match the
// schema registry so the store adapter, the workbook sheets and the migrated
// tables all agree on shape. Monetary columns persist as REAL; arithmetic on
// them runs on decimal values in the finance package. Input checking lives in
// one place, the registry-driven rules in the tracker, so it cannot drift
// from the sheet layout.
package models

// Debt is one tracked liability. Amount must never go negative.
type Debt struct {
	DebtID          uint    `gorm:"column:DebtID;primaryKey"`
	Creditor        string  `gorm:"column:Creditor;size:255;not null"`
	Amount          float64 `gorm:"column:Amount;not null"`
	MinimumPayment  float64 `gorm:"column:MinimumPayment"`
	SnowballPayment float64 `gorm:"column:SnowballPayment"`
	InterestRate    float64 `gorm:"column:InterestRate"`
	DueDate         *string `gorm:"column:DueDate;size:50"`
	Status          string  `gorm:"column:Status;size:50"`
}

func (Debt) TableName() string { return "Debts" }

// Account balance is derived: the recalculator overwrites it from Revenue and
// Payments, a hand edit does not survive the next recompute.
type Account struct {
	AccountID   uint    `gorm:"column:AccountID;primaryKey"`
	AccountName string  `gorm:"column:AccountName;size:255;not null"`
	Balance     float64 `gorm:"column:Balance"`
	AccountType string  `gorm:"column:AccountType;size:50"`
	Status      string  `gorm:"column:Status;size:50"`
}

func (Account) TableName() string { return "Accounts" }

// Payment records money going out. DebtID is nil for payments not tied to a
// specific debt.
type Payment struct {
	PaymentID     uint    `gorm:"column:PaymentID;primaryKey"`
	DebtID        *uint   `gorm:"column:DebtID;index"`
	Amount        float64 `gorm:"column:Amount;not null"`
	PaymentDate   string  `gorm:"column:PaymentDate;size:50;not null"`
	PaymentMethod string  `gorm:"column:PaymentMethod;size:255"`
	Category      string  `gorm:"column:Category;size:50"`
}

func (Payment) TableName() string { return "Payments" }

// Goal progress (CurrentAmount, Status) is derived by the recalculator.
type Goal struct {
	GoalID        uint    `gorm:"column:GoalID;primaryKey"`
	GoalName      string  `gorm:"column:GoalName;size:255;not null"`
	TargetAmount  float64 `gorm:"column:TargetAmount;not null"`
	CurrentAmount float64 `gorm:"column:CurrentAmount"`
	TargetDate    *string `gorm:"column:TargetDate;size:50"`
	Status        string  `gorm:"column:Status;size:50"`
	Notes         string  `gorm:"column:Notes;size:255"`
}

func (Goal) TableName() string { return "Goals" }

type Asset struct {
	AssetID   uint    `gorm:"column:AssetID;primaryKey"`
	AssetName string  `gorm:"column:AssetName;size:255;not null"`
	Value     float64 `gorm:"column:Value;not null"`
	Category  string  `gorm:"column:Category;size:50"`
	Status    string  `gorm:"column:Status;size:50"`
}

func (Asset) TableName() string { return "Assets" }

// Revenue is incoming money. AllocatedTo points at an Account or a Debt
// depending on AllocationType.
type Revenue struct {
	RevenueID      uint    `gorm:"column:RevenueID;primaryKey"`
	Amount         float64 `gorm:"column:Amount;not null"`
	DateReceived   string  `gorm:"column:DateReceived;size:50;not null"`
	Source         string  `gorm:"column:Source;size:255"`
	AllocatedTo    *uint   `gorm:"column:AllocatedTo"`
	AllocationType string  `gorm:"column:AllocationType;size:50"`
}

func (Revenue) TableName() string { return "Revenue" }

type Category struct {
	CategoryID   uint   `gorm:"column:CategoryID;primaryKey"`
	CategoryName string `gorm:"column:CategoryName;size:255;not null;unique"`
}

func (Category) TableName() string { return "Categories" }
