package interfaces

// Store is the full backing store: one implementation (memory or postgres)
// provides the directory, ledger and history capabilities together.
type Store interface {
	DirectoryStore
	LedgerStore
	HistoryStore
}
