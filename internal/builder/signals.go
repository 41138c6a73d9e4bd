package builder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/zpdzap/muslambda/internal/engine"
)

// NotifyFunc registers c for interrupt delivery and returns a function that
// undoes the registration.
type NotifyFunc func(c chan<- os.Signal) (stop func(), err error)

func notifyInterrupt(c chan<- os.Signal) (func(), error) {
	signal.Notify(c, os.Interrupt)
	return func() { signal.Stop(c) }, nil
}

// interruptHandler runs cleanup once when an interrupt arrives.
type interruptHandler struct {
	signals    chan os.Signal
	stopNotify func()
	stopCh     chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
	fired      atomic.Bool
	cleanup    func() error
	err        error
}

func newInterruptHandler(notify NotifyFunc, cleanup func() error) (*interruptHandler, error) {
	h := &interruptHandler{
		signals: make(chan os.Signal, 1),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
		cleanup: cleanup,
	}
	stop, err := notify(h.signals)
	if err != nil {
		return nil, err
	}
	h.stopNotify = stop

	started := make(chan struct{})
	go func() {
		defer close(h.done)
		close(started)

		select {
		case <-h.signals:
			h.fire()
		case <-h.stopCh:
			// Stop unregisters before closing stopCh, so an interrupt that
			// was delivered before then is already buffered here.
			select {
			case <-h.signals:
				h.fire()
			default:
			}
		}
	}()
	<-started
	return h, nil
}

func (h *interruptHandler) fire() {
	h.fired.Store(true)
	h.err = h.cleanup()
}

// Fired reports whether an interrupt has been received.
func (h *interruptHandler) Fired() bool {
	return h.fired.Load()
}

// Done is closed once the handler goroutine has exited.
func (h *interruptHandler) Done() <-chan struct{} {
	return h.done
}

// Err is the cleanup result. Only valid after Done is closed.
func (h *interruptHandler) Err() error {
	return h.err
}

// Stop unregisters the handler and waits for any cleanup already under way,
// including one for an interrupt still pending at the time of the call.
// It reports whether the handler fired.
func (h *interruptHandler) Stop() bool {
	h.stopOnce.Do(func() {
		if h.stopNotify != nil {
			h.stopNotify()
		}
		close(h.stopCh)
	})
	<-h.done
	return h.fired.Load()
}

// startAttached starts the created container attached to the terminal and
// returns when it exits or when an interrupt has been handled.
func (b *Builder) startAttached(ctx context.Context) error {
	name := b.opts.ContainerName

	handler, err := newInterruptHandler(b.notify, func() error {
		return b.onInterrupt(context.WithoutCancel(ctx), name)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignal, err)
	}

	start := engine.NewCommand(engine.StepStart).Arg(name, "-a")
	b.setState(StateStarted)

	exited := make(chan error, 1)
	go func() {
		if handler.Fired() {
			exited <- nil
			return
		}
		exited <- b.step(ctx, start, name)
	}()

	select {
	case err := <-exited:
		// The attached client usually exits because of the same interrupt;
		// in that case the handler's outcome is the one that matters.
		if handler.Stop() {
			b.interrupted.Store(true)
			return handler.Err()
		}
		if err == nil {
			b.logger.Info("container exited, leaving it in place", "container", name)
		}
		return err
	case <-handler.Done():
		// Never return with the attached client still running.
		<-exited
		handler.Stop()
		b.interrupted.Store(true)
		return handler.Err()
	}
}

// onInterrupt releases the recipe and removes the container.
func (b *Builder) onInterrupt(ctx context.Context, name string) error {
	recipeErr := b.recipe.Close()
	rmErr := b.runner.Run(ctx, engine.NewCommand(engine.StepRemove).Arg(name))
	if rmErr != nil {
		b.logger.Warn("interrupted, container removal failed", "container", name, "err", rmErr)
	} else {
		b.logger.Info("interrupted, removed container", "container", name)
	}
	return combine(rmErr, recipeErr)
}
