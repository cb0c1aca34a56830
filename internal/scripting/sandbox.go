// Package scripting runs document scripts against a stub of the Acrobat
// JavaScript API so they can be checked before being embedded.
package scripting

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// Viewer describes the document the stub API pretends to show.
type Viewer struct {
	Pages       int
	OCGsPerPage int
	// Now is the clock behind Date. Defaults to time.Now.
	Now func() time.Time
}

// Report records what a script did during one run.
type Report struct {
	Closed       bool
	Alerts       []string
	OCGsOn       int
	IntervalExpr string
	Interval     time.Duration
}

// Compile parses script without running it.
func Compile(script string) (*goja.Program, error) {
	prg, err := goja.Compile("document.js", script, false)
	if err != nil {
		return nil, fmt.Errorf("compile script: %w", err)
	}
	return prg, nil
}

// Check compiles script and runs it once, as a viewer would on open.
func Check(ctx context.Context, script string, v Viewer) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prg, err := Compile(script)
	if err != nil {
		return nil, err
	}

	vm := goja.New()
	if v.Now != nil {
		vm.SetTimeSource(v.Now)
	}
	rep := &Report{}
	if err := install(vm, v, rep); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	if _, err := vm.RunProgram(prg); err != nil {
		if ie, ok := err.(*goja.InterruptedError); ok {
			if cause := ie.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, fmt.Errorf("run script: %w", err)
	}
	return rep, nil
}

// install exposes app and the document methods on the global object, which
// is what `this` resolves to in top-level and plain function calls.
func install(vm *goja.Runtime, v Viewer, rep *Report) error {
	app := vm.NewObject()
	if err := app.Set("alert", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = call.Arguments[0].String()
		}
		rep.Alerts = append(rep.Alerts, msg)
		return goja.Undefined()
	}); err != nil {
		return err
	}
	if err := app.Set("setInterval", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			rep.IntervalExpr = call.Arguments[0].String()
		}
		if len(call.Arguments) > 1 {
			rep.Interval = time.Duration(call.Arguments[1].ToInteger()) * time.Millisecond
		}
		return vm.NewObject()
	}); err != nil {
		return err
	}

	g := vm.GlobalObject()
	if err := g.Set("app", app); err != nil {
		return err
	}
	if err := g.Set("numPages", v.Pages); err != nil {
		return err
	}
	if err := g.Set("closeDoc", func(goja.FunctionCall) goja.Value {
		rep.Closed = true
		return goja.Undefined()
	}); err != nil {
		return err
	}
	return g.Set("getOCGs", func(call goja.FunctionCall) goja.Value {
		if v.OCGsPerPage == 0 {
			return goja.Null()
		}
		ocgs := make([]interface{}, v.OCGsPerPage)
		for i := range ocgs {
			ocgs[i] = newOCG(vm, rep)
		}
		return vm.NewArray(ocgs...)
	})
}

func newOCG(vm *goja.Runtime, rep *Report) *goja.Object {
	on := false
	obj := vm.NewObject()
	obj.DefineAccessorProperty("state",
		vm.ToValue(func(goja.FunctionCall) goja.Value {
			return vm.ToValue(on)
		}),
		vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				on = call.Arguments[0].ToBoolean()
				if on {
					rep.OCGsOn++
				}
			}
			return goja.Undefined()
		}),
		goja.FLAG_TRUE,
		goja.FLAG_TRUE,
	)
	return obj
}
