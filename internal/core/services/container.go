package services

import (
	portsrepo "github.com/contalibre/contalibre_backend/internal/core/ports/repositories"
	portssvc "github.com/contalibre/contalibre_backend/internal/core/ports/services"
)

// NewServiceContainer wires all services with their repository
// dependencies. This is the composition root used by main.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Book: NewBookService(repos.BookRepo,
			WithChartSeeder(repos.AccountRepo)),
		Account: NewAccountService(repos.AccountRepo,
			WithBookReader(repos.BookRepo)),
		Entry:     NewEntryService(repos.EntryRepo, repos.AccountRepo),
		Reporting: NewReportingService(repos.AccountRepo, repos.EntryRepo),
	}
}
