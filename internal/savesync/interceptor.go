package savesync

import (
	"context"
	"sync"
)

// StyleSink persists generated stylesheets. With no external stylesheet
// configured (empty rel) it calls fallback instead of writing.
type StyleSink interface {
	Write(documentPath, rel, text string, fallback func())
}

// EditTask is the deferral handed back for one will-save event. The host must
// not persist the document before Done is closed.
type EditTask struct {
	done    chan struct{}
	once    sync.Once
	err     error
	outcome Outcome
}

func newEditTask() *EditTask {
	return &EditTask{done: make(chan struct{})}
}

func (t *EditTask) complete(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}

// Done is closed once the save may proceed.
func (t *EditTask) Done() <-chan struct{} {
	return t.done
}

// Err returns the error of the inline edit, if any. Valid after Done.
func (t *EditTask) Err() error {
	<-t.done
	return t.err
}

// Wait blocks until the task completes or ctx ends.
func (t *EditTask) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Outcome describes what the synchronization did. Valid after Done.
func (t *EditTask) Outcome() Outcome {
	<-t.done
	return t.outcome
}

// Interceptor runs the synchronization when a document is about to be saved.
type Interceptor struct {
	config    *ConfigStore
	processor *Processor
	sink      StyleSink
}

// NewInterceptor creates an Interceptor.
func NewInterceptor(config *ConfigStore, processor *Processor, sink StyleSink) *Interceptor {
	return &Interceptor{
		config:    config,
		processor: processor,
		sink:      sink,
	}
}

// OnWillSave handles one will-save event. The returned task completes at once
// unless the inline style block is being rewritten, in which case it completes
// when the editor reports the replacement applied.
func (i *Interceptor) OnWillSave(ctx context.Context, ev WillSaveEvent) *EditTask {
	task := newEditTask()

	if ev.Editor == nil || ev.Document == nil {
		log.Debugf("no active editor")
		task.outcome.Skipped = "no active editor"
		task.complete(nil)
		return task
	}
	doc := ev.Document

	// A clean document is saved again after our own edit; do not loop.
	if !doc.IsDirty() {
		log.Debugf("not dirty: %s", doc.Path())
		task.outcome = Outcome{Path: doc.Path(), Skipped: "not dirty"}
		task.complete(nil)
		return task
	}

	cfg := i.config.Snapshot()
	outcome := i.processor.Process(ctx, doc, cfg)
	task.outcome = outcome
	if outcome.Text == "" {
		task.complete(nil)
		return task
	}

	inline := false
	i.sink.Write(doc.Path(), cfg.ScssFilePath, outcome.Text, func() {
		inline = true
		applied := ev.Editor.Replace(doc, FullRange(doc.LineCount()), outcome.Text)
		go func() {
			select {
			case err := <-applied:
				if err != nil {
					log.Errorf("replace style block of %s: %v", doc.Path(), err)
				}
				task.complete(err)
			case <-ctx.Done():
				task.complete(ctx.Err())
			}
		}()
	})
	if !inline {
		// the external write proceeds on its own
		task.complete(nil)
	}

	return task
}
