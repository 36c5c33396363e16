package services

// ServiceContainer holds instances of all the application services.
// Handlers and CLI commands only reach the store through it.
type ServiceContainer struct {
	Ledger LedgerSvcFacade
}
