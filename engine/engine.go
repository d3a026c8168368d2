package engine

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/controls"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	// frameReady holds at most one pending redraw request.
	frameReady chan struct{}

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	mu          sync.RWMutex
	controllers map[int]controls.OrbitController

	workers int
	pool    worker.DynamicWorkerPool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine drives one or more orbit controllers.
// A fixed-rate tick loop updates every registered controller, and a render loop invokes the render
// callback only when a controller moved its camera.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after the controllers updated.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called for each frame that needs redrawing.
	// The first frame is always drawn; after that only ticks in which a camera moved trigger a frame.
	//
	// Parameters:
	//   - callback: function to call per frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddController registers a controller under key, replacing any previous one.
	//
	// Parameters:
	//   - key: the controller key; controllers update in ascending key order
	//   - c: the controller to register
	AddController(key int, c controls.OrbitController)

	// RemoveController unregisters the controller at key. The controller is not disposed.
	//
	// Parameters:
	//   - key: the key of the controller to remove
	RemoveController(key int)

	// Controller retrieves the controller registered at key.
	//
	// Parameters:
	//   - key: the key of the controller to retrieve
	//
	// Returns:
	//   - controls.OrbitController: the controller, or nil if not found
	Controller(key int) controls.OrbitController

	// Controllers returns a copy of all registered controllers keyed by their key.
	//
	// Returns:
	//   - map[int]controls.OrbitController: a copy of the controllers map
	Controllers() map[int]controls.OrbitController

	// Step updates every registered controller once and schedules a redraw if any camera moved.
	// Updates run in parallel on the engine's worker pool.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous step, used by auto-rotation
	//
	// Returns:
	//   - bool: true if at least one controller changed its camera
	Step(deltaTime float32) bool

	// Run starts the engine loops and blocks until the window closes or Quit is called.
	// Without a window it blocks until Quit.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, workers, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		frameReady:       make(chan struct{}, 1),
		controllers:      make(map[int]controls.OrbitController),
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(time.Second),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		workers:          2,
	}

	for _, opt := range options {
		opt(e)
	}

	e.pool = worker.NewDynamicWorkerPool(e.workers, 256, 1*time.Second)

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if width <= 0 || height <= 0 {
				return
			}
			for _, c := range e.Controllers() {
				if pc, ok := c.Camera().(camera.PerspectiveCamera); ok {
					pc.SetAspect(float32(width) / float32(height))
				}
			}
			e.markDirty()
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.running.Store(true)
	e.markDirty()
	e.handle()
	if e.window != nil {
		// GLFW calls must stay on the window thread, so Quit is observed from the message loop.
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				_ = e.window.Close()
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
	e.pool.Stop()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// markDirty requests a redraw. Requests coalesce until the render loop picks one up.
func (e *engine) markDirty() {
	select {
	case e.frameReady <- struct{}{}:
	default:
	}
}

// handle launches the tick, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleRender()
	go e.handleQuit()
}

func (e *engine) Step(deltaTime float32) bool {
	e.mu.RLock()
	keys := make([]int, 0, len(e.controllers))
	for k := range e.controllers {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	ctrls := make([]controls.OrbitController, len(keys))
	for i, k := range keys {
		ctrls[i] = e.controllers[k]
	}
	e.mu.RUnlock()

	// The pool's Wait only returns once its workers exit, so a WaitGroup is the per-step barrier.
	var wg sync.WaitGroup
	changed := make([]bool, len(ctrls))
	for i, c := range ctrls {
		wg.Add(1)
		e.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				dt := deltaTime
				changed[i] = c.Update(&dt)
				return nil, nil
			},
		})
	}
	wg.Wait()

	moved := false
	for _, ch := range changed {
		moved = moved || ch
	}
	if moved {
		e.markDirty()
	}
	return moved
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Steps every controller at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			changed := e.Step(dt)
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick(changed)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender waits for redraw requests and invokes the render callback for each.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-e.frameReady:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddController(key int, c controls.OrbitController) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.controllers[key] = c
}

func (e *engine) RemoveController(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.controllers, key)
}

func (e *engine) Controller(key int) controls.OrbitController {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.controllers[key]
}

func (e *engine) Controllers() map[int]controls.OrbitController {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]controls.OrbitController, len(e.controllers))
	for k, v := range e.controllers {
		cp[k] = v
	}
	return cp
}
