// Package interfaces documents the core abstractions used throughout the application.
//
// # Notification Transport
//
//   - Notifier: delivers one due-loan reminder (internal/reminder/notifier.go)
//
// The reminder sweep is transport-agnostic. The CLI ships a console
// notifier; a chat transport plugs in without touching the sweep logic.
//
// # Adding a New Notifier
//
// To deliver reminders over a new channel (e.g. Discord DMs):
//
//  1. Implement Notifier in its own package
//
//     type DiscordNotifier struct {
//         session *discordgo.Session
//     }
//
//     func (n *DiscordNotifier) Notify(loan entities.Loan, daysLeft int) error {
//         // Open a DM channel and send reminder.Message(loan, daysLeft)
//     }
//
//     var _ reminder.Notifier = (*DiscordNotifier)(nil)
//
//  2. Hand it to reminder.NewSweeper in place of the console notifier
//
// # Adding a New Database Domain
//
// To add a new data domain alongside loans and the return log:
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add the entity to the AutoMigrate call in internal/database
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
