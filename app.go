package garland

import (
	"fmt"
	"reflect"
	"runtime"
)

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App)
}

type systemFn any

// Stage names a slot in the per-tick execution order.
type Stage struct {
	Name string
}

var (
	PreUpdate = Stage{Name: "PreUpdate"}
	Update    = Stage{Name: "Update"}
	PreRender = Stage{Name: "PreRender"}
	Render    = Stage{Name: "Render"}
	Finale    = Stage{Name: "Finale"}
)

// tickStages run every Step, in order. Finale runs exactly once, at teardown.
var tickStages = []Stage{PreUpdate, Update, PreRender, Render}

// App owns the resource map and the scheduled systems. One App per scene;
// all mutable state lives in resources, systems are plain functions whose
// pointer arguments are resolved from the resource map by type.
type App struct {
	resources map[reflect.Type]any
	systems   map[string][]systemFn
	stopped   bool
	finalized bool
}

func NewApp() *App {
	return &App{
		resources: make(map[reflect.Type]any),
		systems:   make(map[string][]systemFn),
	}
}

func (app *App) UseModules(modules ...Module) *App {
	for _, module := range modules {
		module.Install(app)
	}
	return app
}

// AddResources registers pointer resources, one per concrete type.
func (app *App) AddResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// UseSystem schedules a system function into a stage. Arguments of the
// function must be pointers to registered resources, or *App itself.
func (app *App) UseSystem(system systemFn, stage Stage) *App {
	app.systems[stage.Name] = append(app.systems[stage.Name], system)
	return app
}

// Step runs one tick: every stage in tick order, every system in
// registration order. After Stop, Step is a no-op.
func (app *App) Step() {
	if app.stopped {
		return
	}
	for _, stage := range tickStages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
	}
}

// Run steps until Stop is called (usually by the window-close system),
// then tears down via the Finale stage.
func (app *App) Run() {
	for !app.stopped {
		app.Step()
	}
	app.Finalize()
}

// Stop prevents any further Step from running systems. Idempotent.
func (app *App) Stop() {
	app.stopped = true
}

func (app *App) Stopped() bool {
	return app.stopped
}

// Finalize runs the Finale systems exactly once, releasing GPU resources,
// the window, and any registered callbacks.
func (app *App) Finalize() {
	if app.finalized {
		return
	}
	app.finalized = true
	app.stopped = true
	// Release in reverse acquisition order: renderer before GPU device,
	// GPU device before the window.
	finale := app.systems[Finale.Name]
	for i := len(finale) - 1; i >= 0; i-- {
		app.callSystem(finale[i])
	}
}

var typeOfApp = reflect.TypeOf(App{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfApp {
			args[i] = reflect.ValueOf(app)
		} else if resource, ok := app.resources[underlyingType]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve system dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

// ResourceOf fetches a registered resource by type, or nil if absent.
func ResourceOf[T any](app *App) *T {
	var zero T
	if res, ok := app.resources[reflect.TypeOf(zero)]; ok {
		return res.(*T)
	}
	return nil
}
