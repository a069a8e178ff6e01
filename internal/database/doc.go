// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # MySQL connection setup, pool config, migrations
//	├── loans/           # Active loan rows (the "books" table)
//	└── returnlog/       # Append-only return audit trail ("rueckgabe_log")
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.New(cfg)
//
//	// Create domain-specific repositories
//	loansRepo := loans.NewRepository(db.DB)
//	returnsRepo := returnlog.NewRepository(db.DB)
//
//	// Use repositories
//	loan, err := loansRepo.GetByUserAndISBN(userID, isbn)
//	entries, total, err := returnsRepo.List(50, 0)
//
// # Transactions
//
// The return flow spans both tables (delete the loan, append the audit row)
// and runs inside db.DB.Transaction. Both repositories expose WithTx so the
// transaction-scoped handle flows through the same repository API:
//
//	db.DB.Transaction(func(tx *gorm.DB) error {
//		l := loansRepo.WithTx(tx)
//		r := returnsRepo.WithTx(tx)
//		...
//	})
//
// # Interface Implementations
//
// The lending service takes the repositories directly; the notification
// transport is the one interface seam, with compile-time checks in
// internal/interfaces.
package database
