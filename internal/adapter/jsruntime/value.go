package jsruntime

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/dop251/goja"

	"gitlab.com/codejudge.net/internal/domain"
)

const (
	maxExportDepth = 64
	// maxExportItems bounds the exported tree as a whole, counting shared
	// subtrees once per reference.
	maxExportItems = 100000
	ctxCheckEvery  = 1024
)

var errExportTooLarge = errors.New("result too large to export")

// tooLargeResult replaces a result that exceeds maxExportItems.
var tooLargeResult = domain.Opaque{Repr: "[Result too large]"}

// toJS builds fresh JavaScript values from canonical domain values so a submission
// can never reach the catalog's own slices and maps.
func toJS(vm *goja.Runtime, v interface{}) goja.Value {
	switch val := v.(type) {
	case nil:
		return goja.Null()
	case bool, string, float64:
		return vm.ToValue(val)
	case []interface{}:
		items := make([]interface{}, len(val))
		for i, item := range val {
			items[i] = toJS(vm, item)
		}
		return vm.NewArray(items...)
	case map[string]interface{}:
		obj := vm.NewObject()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_ = obj.Set(k, toJS(vm, val[k]))
		}
		return obj
	}
	// catalog data is normalised before it gets here, so only undefined is left
	return goja.Undefined()
}

// exportValue converts a JavaScript result into the canonical domain value model
// without normalising it: NaN stays NaN, undefined stays undefined.
// It fails with errExportTooLarge past maxExportItems and with ctx.Err() once ctx is done.
func exportValue(ctx context.Context, v goja.Value) (interface{}, error) {
	e := &exporter{
		ctx:      ctx,
		budget:   maxExportItems,
		visiting: make(map[*goja.Object]bool),
		done:     make(map[*goja.Object]exported),
	}
	out, _ := e.export(v, 0)
	if e.err != nil {
		return nil, e.err
	}
	return out, nil
}

type exported struct {
	value interface{}
	size  int
	depth int
}

type exporter struct {
	ctx      context.Context
	budget   int
	visits   int
	visiting map[*goja.Object]bool
	done     map[*goja.Object]exported
	err      error
}

func (e *exporter) charge(n int) bool {
	if e.err != nil {
		return false
	}
	e.budget -= n
	if e.budget < 0 {
		e.err = errExportTooLarge
		return false
	}
	e.visits++
	if e.visits%ctxCheckEvery == 0 {
		if err := e.ctx.Err(); err != nil {
			e.err = err
			return false
		}
	}
	return true
}

// export returns the value and the number of items it stands for.
func (e *exporter) export(v goja.Value, depth int) (interface{}, int) {
	if !e.charge(1) {
		return nil, 0
	}
	if v == nil || goja.IsUndefined(v) {
		return domain.Undefined, 1
	}
	if goja.IsNull(v) {
		return nil, 1
	}
	if sym, ok := v.(*goja.Symbol); ok {
		return domain.Opaque{Repr: "Symbol(" + sym.String() + ")"}, 1
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return exportPrimitive(v), 1
	}

	if _, isFn := goja.AssertFunction(obj); isFn {
		return domain.Opaque{Repr: "[Function]"}, 1
	}
	if e.visiting[obj] {
		return domain.Opaque{Repr: "[Circular]"}, 1
	}
	// a shared subtree is exported once and reused, but still paid for per reference
	if prev, ok := e.done[obj]; ok && depth >= prev.depth {
		if !e.charge(prev.size - 1) {
			return nil, 0
		}
		return prev.value, prev.size
	}
	if depth >= maxExportDepth {
		return domain.Opaque{Repr: "[Object]"}, 1
	}
	e.visiting[obj] = true
	defer delete(e.visiting, obj)

	var (
		out  interface{}
		size = 1
	)
	switch obj.ClassName() {
	case "Array":
		length := obj.Get("length").ToInteger()
		if length > int64(e.budget) {
			e.err = errExportTooLarge
			return nil, 0
		}
		items := make([]interface{}, length)
		for i := int64(0); i < length; i++ {
			item, n := e.export(obj.Get(strconv.FormatInt(i, 10)), depth+1)
			if e.err != nil {
				return nil, 0
			}
			items[i] = item
			size += n
		}
		out = items
	case "Object":
		keys := obj.Keys()
		if len(keys) > e.budget {
			e.err = errExportTooLarge
			return nil, 0
		}
		fields := make(map[string]interface{}, len(keys))
		for _, k := range keys {
			item, n := e.export(obj.Get(k), depth+1)
			if e.err != nil {
				return nil, 0
			}
			fields[k] = item
			size += n
		}
		out = fields
	default:
		return domain.Opaque{Repr: v.String()}, 1
	}

	e.done[obj] = exported{value: out, size: size, depth: depth}
	return out, size
}

func exportPrimitive(v goja.Value) interface{} {
	switch val := v.Export().(type) {
	case int64:
		return float64(val)
	case float64:
		return val
	case string:
		return val
	case bool:
		return val
	}
	return domain.Opaque{Repr: v.String()}
}
