package services

import (
	portsrepo "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/repositories"
	portssvc "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/services"
	"github.com/Arshia-r-m/Financial-tracker/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger: NewLedgerService(repos.LedgerRepo, WithRetryAttempts(cfg.StorageRetryAttempts)),
	}
}
