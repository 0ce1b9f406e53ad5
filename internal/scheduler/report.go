package scheduler

import (
	"context"
	"fmt"

	"github.com/nebulus/blackbox/internal/llm"
	"github.com/nebulus/blackbox/internal/logger"
	"github.com/nebulus/blackbox/internal/mail"
)

// ReportPipeline turns a due job into an email: the job's prompt goes
// to the LLM and the generated text is delivered to the recipients. A
// generation failure still produces a report whose body names the
// error, so a broken model surfaces in the inbox instead of vanishing.
type ReportPipeline struct {
	provider llm.Provider
	sender   mail.Sender
	log      *logger.Logger
	metrics  *Metrics
}

// NewReportPipeline creates a pipeline over the given provider and
// sender.
func NewReportPipeline(provider llm.Provider, sender mail.Sender, log *logger.Logger, metrics *Metrics) *ReportPipeline {
	return &ReportPipeline{provider: provider, sender: sender, log: log, metrics: metrics}
}

// Run generates and delivers the report for one job.
func (p *ReportPipeline) Run(ctx context.Context, job Job) {
	p.log.Info("running report job",
		logger.Field{Key: "job_id", Value: job.ID},
		logger.Field{Key: "title", Value: job.Title})

	body := p.Generate(ctx, job)
	p.Deliver(job, body)
}

// Generate produces the report body. On LLM failure the body is the
// error text, never empty.
func (p *ReportPipeline) Generate(ctx context.Context, job Job) string {
	body, err := p.provider.Generate(ctx, job.Prompt)
	if err != nil {
		if p.metrics != nil {
			p.metrics.ReportFailures.Inc()
		}
		p.log.Error("report generation failed", err,
			logger.Field{Key: "job_id", Value: job.ID})
		return fmt.Sprintf("Error generating report: %v", err)
	}

	if p.metrics != nil {
		p.metrics.ReportsGenerated.Inc()
	}
	return body
}

// Deliver emails the report body to the job's recipients. Jobs without
// recipients and deployments without a mail host skip delivery with a
// log line instead of failing the run.
func (p *ReportPipeline) Deliver(job Job, body string) {
	if len(job.Recipients) == 0 {
		p.log.Info("no recipients, skipping delivery",
			logger.Field{Key: "job_id", Value: job.ID})
		return
	}
	if !p.sender.Enabled() {
		p.log.Warn("mail delivery not configured, skipping",
			logger.Field{Key: "job_id", Value: job.ID})
		return
	}

	subject := "[Report] " + job.Title
	if err := p.sender.Send(subject, body, job.Recipients); err != nil {
		if p.metrics != nil {
			p.metrics.DeliveryFailures.Inc()
		}
		p.log.Error("report delivery failed", err,
			logger.Field{Key: "job_id", Value: job.ID},
			logger.Field{Key: "recipients", Value: len(job.Recipients)})
		return
	}

	if p.metrics != nil {
		p.metrics.ReportsDelivered.Inc()
	}
	p.log.Info("report delivered",
		logger.Field{Key: "job_id", Value: job.ID},
		logger.Field{Key: "recipients", Value: len(job.Recipients)})
}
