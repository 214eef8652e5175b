package accounts

// DefaultChart returns the chart of accounts seeded at tenant provisioning.
// First digits line up with the nature convention: 1 assets, 2 liabilities,
// 3 equity, 4 income, 5 costs, 6 expenses.
func DefaultChart() []Account {
	return []Account{
		{Code: "1101", Name: "Cash", Type: TypeAsset},
		{Code: "1102", Name: "Bank", Type: TypeAsset},
		{Code: "1105", Name: "Accounts receivable", Type: TypeAsset},
		{Code: "1201", Name: "Inventory", Type: TypeAsset},
		{Code: "2101", Name: "Accounts payable", Type: TypeLiability},
		{Code: "2105", Name: "Taxes payable", Type: TypeLiability},
		{Code: "3101", Name: "Capital", Type: TypeEquity},
		{Code: "4101", Name: "Sales", Type: TypeIncome},
		{Code: "4201", Name: "Other income", Type: TypeIncome},
		{Code: "5101", Name: "Cost of goods sold", Type: TypeExpense},
		{Code: "6101", Name: "Operating expenses", Type: TypeExpense},
		{Code: "6201", Name: "Salaries", Type: TypeExpense},
	}
}
