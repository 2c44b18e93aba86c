package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/middleware"
	"github.com/shopspring/decimal"
)

// workingCapitalCodes is the fixed set of account codes treated as operating
// working-capital accounts for the indirect-method cash flow statement.
var workingCapitalCodes = map[string]string{
	"1100": "Accounts Receivable",
	"1200": "Inventory",
	"1300": "Prepaid Expenses",
	"2000": "Accounts Payable",
	"2100": "Accrued Liabilities",
}

// reportingService implements the ReportingService interface. All reports are
// pure read-side aggregations over committed Account + LedgerRecord state;
// open invoices/bills are consulted for aging only.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	documentRepo  portsrepo.DocumentRepository
	balanceSvc    portssvc.BalanceSvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, documentRepo portsrepo.DocumentRepository, balanceSvc portssvc.BalanceSvcFacade) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		documentRepo:  documentRepo,
		balanceSvc:    balanceSvc,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// GenerateTrialBalance delegates to the balance query service.
func (s *reportingService) GenerateTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	return s.balanceSvc.GetTrialBalance(ctx, companyID, asOf)
}

// correctedBalance negates the oriented balance for contra accounts (normal
// balance opposed to the type's expected direction) so contras reduce rather
// than inflate their group.
func correctedBalance(a domain.AccountActivity) decimal.Decimal {
	balance := a.Balance()
	if a.NormalBalance != domain.ExpectedNormalBalance(a.AccountType) {
		return balance.Neg()
	}
	return balance
}

// balanceSheetGroupLabel classifies an asset or liability account by its
// free-text subType tag.
func balanceSheetGroupLabel(accountType domain.AccountType, subType string) string {
	tag := strings.ToLower(subType)
	switch {
	case strings.Contains(tag, "current"):
		return "Current"
	case accountType == domain.Asset && strings.Contains(tag, "fixed"):
		return "Fixed"
	case accountType == domain.Liability && strings.Contains(tag, "long"):
		return "Long-term"
	default:
		return "Other"
	}
}

func groupBalanceSheetLines(accountType domain.AccountType, activities []domain.AccountActivity) ([]domain.BalanceSheetGroup, decimal.Decimal) {
	labels := []string{"Current", "Fixed", "Other"}
	if accountType == domain.Liability {
		labels = []string{"Current", "Long-term", "Other"}
	}

	grouped := make(map[string][]domain.BalanceSheetLine)
	total := decimal.Zero
	for _, a := range activities {
		if a.AccountType != accountType {
			continue
		}
		balance := correctedBalance(a)
		label := balanceSheetGroupLabel(accountType, a.SubType)
		grouped[label] = append(grouped[label], domain.BalanceSheetLine{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			AccountName: a.AccountName,
			SubType:     a.SubType,
			Balance:     balance,
		})
		total = total.Add(balance)
	}

	groups := make([]domain.BalanceSheetGroup, 0, len(labels))
	for _, label := range labels {
		lines := grouped[label]
		groupTotal := decimal.Zero
		for _, l := range lines {
			groupTotal = groupTotal.Add(l.Balance)
		}
		groups = append(groups, domain.BalanceSheetGroup{Label: label, Lines: lines, Total: groupTotal})
	}
	return groups, total
}

// GenerateBalanceSheet builds the statement of financial position as of a
// date. Current-year net income is folded into equity so the accounting
// equation holds before any period-close entries exist. An equation break is
// reported via the Balanced flag, never thrown.
func (s *reportingService) GenerateBalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activities, err := s.reportingRepo.GetAccountBalancesAsOf(ctx, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	assetGroups, totalAssets := groupBalanceSheetLines(domain.Asset, activities)
	liabilityGroups, totalLiabilities := groupBalanceSheetLines(domain.Liability, activities)

	equity := make([]domain.BalanceSheetLine, 0)
	totalEquity := decimal.Zero
	for _, a := range activities {
		if a.AccountType != domain.Equity {
			continue
		}
		balance := correctedBalance(a)
		equity = append(equity, domain.BalanceSheetLine{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			AccountName: a.AccountName,
			SubType:     a.SubType,
			Balance:     balance,
		})
		totalEquity = totalEquity.Add(balance)
	}

	// Unposted current-period earnings: income statement from Jan 1 of the
	// as-of year through the as-of date.
	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
	incomeStatement, err := s.GenerateIncomeStatement(ctx, companyID, yearStart, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to compute current-year net income: %w", err)
	}
	totalEquity = totalEquity.Add(incomeStatement.NetIncome)

	report := &domain.BalanceSheetReport{
		AsOf:                 asOf,
		AssetGroups:          assetGroups,
		LiabilityGroups:      liabilityGroups,
		Equity:               equity,
		TotalAssets:          totalAssets,
		TotalLiabilities:     totalLiabilities,
		TotalEquity:          totalEquity,
		CurrentYearNetIncome: incomeStatement.NetIncome,
	}
	report.Balanced = totalAssets.Sub(totalLiabilities.Add(totalEquity)).Abs().LessThan(domain.BalanceTolerance)

	if !report.Balanced {
		logger.Warn("Balance sheet does not balance",
			slog.String("company_id", companyID),
			slog.String("total_assets", totalAssets.String()),
			slog.String("total_liabilities", totalLiabilities.String()),
			slog.String("total_equity", totalEquity.String()))
	}
	return report, nil
}

// revenueBucket classifies a revenue account's subType tag.
func revenueBucket(subType string) string {
	tag := strings.ToLower(subType)
	switch {
	case strings.Contains(tag, "contra"):
		return "contra"
	case strings.Contains(tag, "other") || strings.Contains(tag, "non-operating"):
		return "other"
	default:
		return "operating"
	}
}

// expenseBucket classifies an expense account's subType tag. Accounts whose
// tag matches no keyword land in no bucket; they still count toward totals.
func expenseBucket(subType string) string {
	tag := strings.ToLower(subType)
	switch {
	case strings.Contains(tag, "cost of") || strings.Contains(tag, "cogs"):
		return "cost"
	case strings.Contains(tag, "non-operating") || strings.Contains(tag, "other"):
		return "nonoperating"
	case strings.Contains(tag, "operating"):
		return "operating"
	default:
		return ""
	}
}

// GenerateIncomeStatement builds the period earnings statement. Revenue rows
// use the credit-normal formula credit-debit (so debit-normal contra-revenue
// accounts come out negative); expense rows use debit-credit. NetIncome is
// computed over the full unfiltered account sets, independent of bucketing.
func (s *reportingService) GenerateIncomeStatement(ctx context.Context, companyID string, startDate, endDate time.Time) (*domain.IncomeStatementReport, error) {
	activities, err := s.reportingRepo.GetAccountActivity(ctx, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	report := &domain.IncomeStatementReport{
		StartDate:            startDate,
		EndDate:              endDate,
		OperatingRevenue:     []domain.IncomeStatementLine{},
		ContraRevenue:        []domain.IncomeStatementLine{},
		OtherIncome:          []domain.IncomeStatementLine{},
		CostOfSales:          []domain.IncomeStatementLine{},
		OperatingExpenses:    []domain.IncomeStatementLine{},
		NonOperatingExpenses: []domain.IncomeStatementLine{},
	}

	totalRevenue := decimal.Zero
	totalExpenses := decimal.Zero
	grossRevenue := decimal.Zero
	contraTotal := decimal.Zero
	costOfSalesTotal := decimal.Zero
	operatingExpenseTotal := decimal.Zero

	for _, a := range activities {
		switch a.AccountType {
		case domain.Revenue:
			amount := a.Credit.Sub(a.Debit)
			line := domain.IncomeStatementLine{
				AccountID:   a.AccountID,
				AccountCode: a.AccountCode,
				AccountName: a.AccountName,
				SubType:     a.SubType,
				Amount:      amount,
			}
			totalRevenue = totalRevenue.Add(amount)
			switch revenueBucket(a.SubType) {
			case "contra":
				report.ContraRevenue = append(report.ContraRevenue, line)
				contraTotal = contraTotal.Add(amount)
			case "other":
				report.OtherIncome = append(report.OtherIncome, line)
			default:
				report.OperatingRevenue = append(report.OperatingRevenue, line)
				grossRevenue = grossRevenue.Add(amount)
			}
		case domain.Expense:
			amount := a.Debit.Sub(a.Credit)
			line := domain.IncomeStatementLine{
				AccountID:   a.AccountID,
				AccountCode: a.AccountCode,
				AccountName: a.AccountName,
				SubType:     a.SubType,
				Amount:      amount,
			}
			totalExpenses = totalExpenses.Add(amount)
			switch expenseBucket(a.SubType) {
			case "cost":
				report.CostOfSales = append(report.CostOfSales, line)
				costOfSalesTotal = costOfSalesTotal.Add(amount)
			case "nonoperating":
				report.NonOperatingExpenses = append(report.NonOperatingExpenses, line)
			case "operating":
				report.OperatingExpenses = append(report.OperatingExpenses, line)
				operatingExpenseTotal = operatingExpenseTotal.Add(amount)
			}
		}
	}

	report.GrossRevenue = grossRevenue
	report.NetRevenue = grossRevenue.Add(contraTotal)
	report.GrossProfit = report.NetRevenue.Sub(costOfSalesTotal)
	report.OperatingIncome = report.GrossProfit.Sub(operatingExpenseTotal)
	report.TotalRevenue = totalRevenue
	report.TotalExpenses = totalExpenses
	report.NetIncome = totalRevenue.Sub(totalExpenses)

	return report, nil
}

// isCashAccount identifies the accounts whose movements constitute cash for
// the cash flow statement.
func isCashAccount(a domain.AccountActivity) bool {
	if a.AccountType != domain.Asset || a.NormalBalance != domain.DebitBalance {
		return false
	}
	tag := strings.ToLower(a.SubType + " " + a.AccountName)
	return strings.Contains(tag, "cash") || strings.Contains(tag, "bank")
}

func isDepreciationAccount(a domain.AccountActivity) bool {
	name := strings.ToLower(a.AccountName)
	return strings.Contains(name, "depreciation") || strings.Contains(name, "amortization")
}

// GenerateCashFlowStatement builds the indirect-method statement of cash
// flows. Beginning cash is measured at startDate minus one day so same-day
// transactions are excluded from the opening balance and counted exactly
// once, in-period; this is what makes beginningCash + netCashFlow reconcile
// with the ledger's ending cash.
func (s *reportingService) GenerateCashFlowStatement(ctx context.Context, companyID string, startDate, endDate time.Time) (*domain.CashFlowReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	incomeStatement, err := s.GenerateIncomeStatement(ctx, companyID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	activities, err := s.reportingRepo.GetAccountActivity(ctx, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cash flow activity: %w", err)
	}

	beforeStart := startDate.AddDate(0, 0, -1)
	openingBalances, err := s.reportingRepo.GetAccountBalancesAsOf(ctx, companyID, beforeStart)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve opening balances: %w", err)
	}
	closingBalances, err := s.reportingRepo.GetAccountBalancesAsOf(ctx, companyID, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve closing balances: %w", err)
	}

	openingByCode := make(map[string]domain.AccountActivity, len(openingBalances))
	for _, a := range openingBalances {
		openingByCode[a.AccountCode] = a
	}

	report := &domain.CashFlowReport{
		StartDate:             startDate,
		EndDate:               endDate,
		NetIncome:             incomeStatement.NetIncome,
		WorkingCapitalChanges: []domain.CashFlowItem{},
		InvestingActivities:   []domain.CashFlowItem{},
		FinancingActivities:   []domain.CashFlowItem{},
	}

	// Non-cash add-backs.
	depreciation := decimal.Zero
	for _, a := range activities {
		if a.AccountType == domain.Expense && isDepreciationAccount(a) {
			depreciation = depreciation.Add(a.Debit.Sub(a.Credit))
		}
	}
	report.DepreciationAmortization = depreciation

	// Working-capital adjustments over the fixed operating account codes:
	// cash effect is -delta for asset accounts, +delta for liabilities.
	adjustmentTotal := decimal.Zero
	for _, a := range closingBalances {
		label, tracked := workingCapitalCodes[a.AccountCode]
		if !tracked || (a.AccountType != domain.Asset && a.AccountType != domain.Liability) {
			continue
		}
		delta := a.Balance().Sub(openingByCode[a.AccountCode].Balance())
		cashEffect := delta.Neg()
		if a.AccountType == domain.Liability {
			cashEffect = delta
		}
		report.WorkingCapitalChanges = append(report.WorkingCapitalChanges, domain.CashFlowItem{
			Label:  "Change in " + label,
			Amount: cashEffect,
		})
		adjustmentTotal = adjustmentTotal.Add(cashEffect)
	}
	report.OperatingCashFlow = incomeStatement.NetIncome.Add(depreciation).Add(adjustmentTotal)

	// Investing: fixed-asset purchases/disposals. Contra fixed-asset accounts
	// such as Accumulated Depreciation are excluded by the debit-normal filter.
	investing := decimal.Zero
	for _, a := range activities {
		if a.AccountType != domain.Asset || a.NormalBalance != domain.DebitBalance {
			continue
		}
		if !strings.Contains(strings.ToLower(a.SubType), "fixed") {
			continue
		}
		effect := a.Debit.Sub(a.Credit).Neg()
		if effect.IsZero() {
			continue
		}
		report.InvestingActivities = append(report.InvestingActivities, domain.CashFlowItem{
			Label:  a.AccountName,
			Amount: effect,
		})
		investing = investing.Add(effect)
	}
	report.InvestingCashFlow = investing

	// Financing: equity movements plus long-term debt.
	financing := decimal.Zero
	for _, a := range activities {
		isFinancing := a.AccountType == domain.Equity ||
			(a.AccountType == domain.Liability && strings.Contains(strings.ToLower(a.SubType), "long"))
		if !isFinancing {
			continue
		}
		effect := a.Credit.Sub(a.Debit)
		if effect.IsZero() {
			continue
		}
		report.FinancingActivities = append(report.FinancingActivities, domain.CashFlowItem{
			Label:  a.AccountName,
			Amount: effect,
		})
		financing = financing.Add(effect)
	}
	report.FinancingCashFlow = financing

	report.NetCashFlow = report.OperatingCashFlow.Add(investing).Add(financing)

	beginningCash := decimal.Zero
	for _, a := range openingBalances {
		if isCashAccount(a) {
			beginningCash = beginningCash.Add(a.Balance())
		}
	}
	calculatedEndingCash := decimal.Zero
	for _, a := range closingBalances {
		if isCashAccount(a) {
			calculatedEndingCash = calculatedEndingCash.Add(a.Balance())
		}
	}

	report.BeginningCash = beginningCash
	report.EndingCash = beginningCash.Add(report.NetCashFlow)
	report.CalculatedEndingCash = calculatedEndingCash
	report.Reconciled = report.EndingCash.Sub(calculatedEndingCash).Abs().LessThan(domain.BalanceTolerance)

	if !report.Reconciled {
		logger.Warn("Cash flow statement does not reconcile",
			slog.String("company_id", companyID),
			slog.String("ending_cash", report.EndingCash.String()),
			slog.String("calculated_ending_cash", calculatedEndingCash.String()))
	}
	return report, nil
}

// GenerateARAgingReport buckets open customer invoices by days overdue.
func (s *reportingService) GenerateARAgingReport(ctx context.Context, companyID string, asOf time.Time) (*domain.AgingReport, error) {
	return s.generateAging(ctx, companyID, domain.Receivable, asOf)
}

// GenerateAPAgingReport buckets open supplier bills by days overdue.
func (s *reportingService) GenerateAPAgingReport(ctx context.Context, companyID string, asOf time.Time) (*domain.AgingReport, error) {
	return s.generateAging(ctx, companyID, domain.Payable, asOf)
}

func (s *reportingService) generateAging(ctx context.Context, companyID string, kind domain.DocumentKind, asOf time.Time) (*domain.AgingReport, error) {
	documents, err := s.documentRepo.FindOpenDocuments(ctx, companyID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve open documents: %w", err)
	}

	report := &domain.AgingReport{AsOf: asOf, Parties: []domain.AgingParty{}}
	partyIndex := make(map[string]int)

	for _, doc := range documents {
		if !doc.BalanceDue.IsPositive() {
			continue
		}

		daysOverdue := int(asOf.Sub(doc.DueDate).Hours() / 24)
		bucket := domain.BucketForDaysOverdue(daysOverdue)

		idx, seen := partyIndex[doc.PartyID]
		if !seen {
			idx = len(report.Parties)
			partyIndex[doc.PartyID] = idx
			report.Parties = append(report.Parties, domain.AgingParty{
				PartyID:   doc.PartyID,
				PartyName: doc.PartyName,
			})
		}
		party := &report.Parties[idx]

		party.Documents = append(party.Documents, domain.AgingDocument{
			DocumentID:     doc.DocumentID,
			DocumentNumber: doc.DocumentNumber,
			DueDate:        doc.DueDate,
			DaysOverdue:    daysOverdue,
			BalanceDue:     doc.BalanceDue,
			Bucket:         bucket,
		})
		party.Total = party.Total.Add(doc.BalanceDue)
		report.GrandTotal = report.GrandTotal.Add(doc.BalanceDue)
		report.DocumentCount++

		switch bucket {
		case domain.BucketCurrent:
			party.Current = party.Current.Add(doc.BalanceDue)
			report.Current = report.Current.Add(doc.BalanceDue)
		case domain.Bucket1To30:
			party.Days1To30 = party.Days1To30.Add(doc.BalanceDue)
			report.Days1To30 = report.Days1To30.Add(doc.BalanceDue)
		case domain.Bucket31To60:
			party.Days31To60 = party.Days31To60.Add(doc.BalanceDue)
			report.Days31To60 = report.Days31To60.Add(doc.BalanceDue)
		case domain.Bucket61To90:
			party.Days61To90 = party.Days61To90.Add(doc.BalanceDue)
			report.Days61To90 = report.Days61To90.Add(doc.BalanceDue)
		case domain.BucketOver90:
			party.Over90 = party.Over90.Add(doc.BalanceDue)
			report.Over90 = report.Over90.Add(doc.BalanceDue)
		}
	}

	sort.Slice(report.Parties, func(i, j int) bool {
		return report.Parties[i].PartyName < report.Parties[j].PartyName
	})
	report.PartyCount = len(report.Parties)

	return report, nil
}
