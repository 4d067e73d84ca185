// Package jobs provides scheduled background tasks for the bookstore.
//
// Jobs use github.com/robfig/cron/v3 with second-level cron expressions.
//
// # Available Jobs
//
// InvoiceBackfillJob invoices Delivered orders that have no invoice. Delivery
// confirmation normally creates the invoice in its own transaction; the backfill covers
// orders imported or delivered while invoicing was off. It runs every minute by default
// (INVOICE_BACKFILL_SCHEDULE overrides it).
//
// # Usage
//
//	backfill := jobs.NewInvoiceBackfillJob(orderRepo, generateInvoiceHandler, cfg.InvoiceBackfillSchedule, logger)
//	jobManager := jobs.NewJobManager(backfill)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failure for one order is logged and the run continues with the next one. The
// order stays uninvoiced and is picked up again by the next run.
package jobs
