package buysim

import "context"

// gatewayCall records one Invoke for later inspection.
type gatewayCall struct {
	operation string
	params    any
}

// fakeGateway implements Gateway with a scripted response function.
type fakeGateway struct {
	respond func(operation string, params any) Result
	calls   []gatewayCall
}

func (f *fakeGateway) Invoke(_ context.Context, operation string, params any) Result {
	f.calls = append(f.calls, gatewayCall{operation: operation, params: params})
	if f.respond == nil {
		return Result{}
	}
	result := f.respond(operation, params)
	if result == nil {
		return Result{}
	}
	return result
}

// operations returns the invoked operation names in call order.
func (f *fakeGateway) operations() []string {
	ops := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		ops = append(ops, call.operation)
	}
	return ops
}

// count returns how many times the named operation was invoked.
func (f *fakeGateway) count(operation string) int {
	n := 0
	for _, call := range f.calls {
		if call.operation == operation {
			n++
		}
	}
	return n
}
