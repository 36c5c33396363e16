package repositories

// RepositoryProvider holds the repositories needed by services.
type RepositoryProvider struct {
	LedgerRepo LedgerRepository
}
