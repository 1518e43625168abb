package usecase

import (
	"context"

	"RunSight/internal/domain/models"
	drepo "RunSight/internal/domain/repository"
	mid "RunSight/internal/middleware"
)

// ActivityCollector collects activity records from a device stream and
// processes them.
type ActivityCollector struct {
	stream  drepo.ActivityStream
	proc    *ActivityProcessor
	metrics drepo.Metrics
	pipe    *mid.RealtimePipeline
}

// NewActivityCollector creates a new ActivityCollector instance.
func NewActivityCollector(stream drepo.ActivityStream, proc *ActivityProcessor, metrics drepo.Metrics, pipe *mid.RealtimePipeline) *ActivityCollector {
	return &ActivityCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the device stream is connected.
func (c *ActivityCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *ActivityCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	actCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, actCh, errCh)
	return nil
}

func (c *ActivityCollector) consume(ctx context.Context, actCh <-chan *models.ActivityRecord, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case a := <-actCh:
			if a == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, a)
			} else {
				_ = c.proc.Process(ctx, a)
			}
		}
	}
}

func (c *ActivityCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying ActivityProcessor for lifecycle management.
func (c *ActivityCollector) Processor() *ActivityProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *ActivityCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
