package services

import (
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since the journal service resolves lines through it.
	container.Account = NewAccountService(repos.AccountRepo)

	poster := NewLedgerPoster(repos.JournalRepo)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account, poster)

	container.Balance = NewBalanceService(repos.AccountRepo, repos.LedgerRepo, repos.ReportingRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.DocumentRepo, container.Balance)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)

	return container
}
