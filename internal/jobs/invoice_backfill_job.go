package jobs

import (
	"context"
	"log/slog"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultInvoiceBackfillSchedule runs the backfill at the start of every minute.
	DefaultInvoiceBackfillSchedule = "0 * * * * *"
	// invoiceBackfillBatch bounds the orders handled per run.
	invoiceBackfillBatch = 100
)

// DeliveredOrderLister finds delivered orders that have no invoice yet.
type DeliveredOrderLister interface {
	ListDeliveredWithoutInvoice(ctx context.Context, limit int) ([]kernel.UUID, error)
}

// InvoiceGenerator creates the invoice of a delivered order, or returns the stored one.
type InvoiceGenerator interface {
	Handle(ctx context.Context, cmd commands.GenerateInvoiceCommand) (*invoice.Invoice, bool, error)
}

// InvoiceBackfillJob invoices delivered orders whose invoice is missing, e.g. orders
// delivered before invoicing was enabled. Generation is idempotent, so overlapping
// runs or a concurrent confirmation only ever produce one invoice per order.
type InvoiceBackfillJob struct {
	lister    DeliveredOrderLister
	generator InvoiceGenerator
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewInvoiceBackfillJob creates the job. schedule is a six-field cron expression
// (seconds first); empty means DefaultInvoiceBackfillSchedule.
func NewInvoiceBackfillJob(
	lister DeliveredOrderLister,
	generator InvoiceGenerator,
	schedule string,
	logger *slog.Logger,
) *InvoiceBackfillJob {
	if schedule == "" {
		schedule = DefaultInvoiceBackfillSchedule
	}
	return &InvoiceBackfillJob{
		lister:    lister,
		generator: generator,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "invoice_backfill_job"),
	}
}

// Start schedules the job.
func (j *InvoiceBackfillJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Invoice backfill failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Invoice backfill job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling; a run in progress finishes on its own.
func (j *InvoiceBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Invoice backfill job stopped")
}

// RunOnce invoices one batch and returns how many invoices it created. Failures of
// single orders are logged and skipped; only a failed listing is returned.
func (j *InvoiceBackfillJob) RunOnce(ctx context.Context) (int, error) {
	orderIDs, err := j.lister.ListDeliveredWithoutInvoice(ctx, invoiceBackfillBatch)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, orderID := range orderIDs {
		cmd, err := commands.NewGenerateInvoiceCommand(orderID)
		if err != nil {
			j.logger.WarnContext(ctx, "Skipping order", "order_id", orderID.String(), "error", err)
			continue
		}

		inv, isNew, err := j.generator.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Invoice generation failed", "order_id", orderID.String(), "error", err)
			continue
		}
		if isNew {
			created++
			j.logger.InfoContext(ctx, "Invoice created", "order_id", orderID.String(), "number", inv.Number())
		}
	}

	return created, nil
}
