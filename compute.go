package ui

import (
	"context"
	"errors"
	"github.com/Yeicor/solveview/internal/solve"
	"github.com/Yeicor/solveview/internal/view"
	"github.com/Yeicor/solveview/internal/watch"
	"github.com/barkimedes/go-deepcopy"
	"log"
	"time"
)

// Recompute fetches and displays the result for the current inputs, cancelling any previous computation.
// The returned channel receives the outcome (nil on success) and is then closed.
func (v *Viewer) Recompute() <-chan error {
	v.computeCancelLock.Lock()
	v.prevComputeCancel() // Only the latest inputs matter
	ctx, cancel := context.WithCancel(v.ctx)
	v.prevComputeCancel = cancel
	v.computeCancelLock.Unlock()

	v.stateLock.Lock()
	inputs := deepcopy.MustAnything(v.inputs).(solve.Inputs)
	v.status = "Loading " + inputs.Filename() + "..."
	v.stateLock.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- v.compute(ctx, inputs)
	}()
	return done
}

func (v *Viewer) compute(ctx context.Context, inputs solve.Inputs) error {
	v.computeLock.Lock()
	defer v.computeLock.Unlock()
	if err := ctx.Err(); err != nil {
		return err // Superseded while waiting for the previous computation
	}

	filename := inputs.Filename()
	res, err := v.client.Fetch(ctx, filename)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			return err // The newer computation owns the status
		case errors.Is(err, solve.ErrNotFound):
			log.Println("[Viewer] Could not load file:", filename)
		default:
			log.Println("[Viewer] Error loading file:", filename, ":", err)
		}
		v.setStatus(err)
		return err
	}
	group, err := solve.Decode(res)
	if err != nil {
		log.Println("[Viewer] No objects to load from", filename)
		v.setStatus(err)
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	v.stateLock.Lock()
	v.scene.ReplaceGeometry(group) // Replaced in a single step to avoid blinking
	v.filename = filename
	v.downloadEnabled = true
	if !v.initialLoaded || v.cfg.FitOnEveryLoad {
		view.FitToSelection(v.camera, v.controls, v.scene.Children(), v.fitOffset)
		v.initialLoaded = true
	}
	v.status = "Loaded " + filename
	v.stateLock.Unlock()
	log.Println("[Viewer] Loaded response file:", filename, "from", v.client.URL(filename))

	v.rerender()
	return nil
}

func (v *Viewer) setStatus(err error) {
	v.stateLock.Lock()
	v.status = err.Error()
	v.stateLock.Unlock()
}

// Loading reports whether a result is being fetched or loaded (the spinner is visible).
func (v *Viewer) Loading() bool {
	ctx, cancelFunc := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancelFunc()
	if v.computeLock.TryLock(ctx) {
		v.computeLock.Unlock()
		return false
	}
	return true
}

// watchChanges recomputes whenever the server reports a change to the displayed result file
func (v *Viewer) watchChanges() {
	wsURL, err := watch.URLFor(v.cfg.Server)
	if err != nil {
		log.Println("[Viewer] Can't watch for changes:", err)
		return
	}
	err = watch.Subscribe(v.ctx, wsURL, func(ev watch.Event) {
		v.stateLock.RLock()
		current := v.filename
		v.stateLock.RUnlock()
		if ev.File == current {
			log.Println("[Viewer] Displayed result changed (", ev.Op, "), reloading")
			v.Recompute()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Println("[Viewer] Stopped watching for changes:", err)
	}
}
