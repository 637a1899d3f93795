package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota
	Drop            // nack without requeue
	Requeue         // nack with requeue
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	case Requeue:
		return "requeue"
	}
	return "unknown"
}

var ErrEmptyJob = errors.New("email job has no recipient or body")

// Worker turns queued EmailJob payloads into deliveries.
type Worker struct {
	sender  Deliverer
	log     *logrus.Logger
	timeout time.Duration
}

func NewWorker(sender Deliverer, log *logrus.Logger, timeout time.Duration) *Worker {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Worker{sender: sender, log: log, timeout: timeout}
}

// Prepare decodes body and checks that it names a recipient and a body.
func Prepare(body []byte) (EmailJob, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return job, err
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" || (job.Text == "" && job.HTML == "") {
		return job, ErrEmptyJob
	}
	return job, nil
}

// Handle processes one message. Malformed jobs are dropped and
// transport failures are requeued.
func (w *Worker) Handle(ctx context.Context, body []byte) Outcome {
	job, err := Prepare(body)
	if err != nil {
		w.log.WithError(err).Warn("bad email job")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.sender.Deliver(c, job.To, job.Subject, job.Text, job.HTML); err != nil {
		w.log.WithError(err).WithFields(logrus.Fields{"job_id": job.ID, "to": job.To}).Error("send failed")
		return Requeue
	}
	w.log.WithFields(logrus.Fields{"job_id": job.ID, "to": job.To, "subject": job.Subject}).Info("email sent")
	return Ack
}
