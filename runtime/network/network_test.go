package network

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/fbp/extension"
	"github.com/viant/fbp/model/graph"
	"github.com/viant/fbp/model/types"
	"github.com/viant/fbp/service/component/base"
	"github.com/viant/fbp/service/component/builtin"
	"github.com/viant/fbp/service/component/unary"
	"github.com/viant/fbp/service/metrics"
)

// recorder keeps every value received on "in" and forwards it to "out"
type recorder struct {
	*base.Component
	values []interface{}
}

func (r *recorder) Receive(value interface{}, port string) error {
	if port != types.PortIn {
		return types.NewUnknownPortError("recorder", port)
	}
	r.values = append(r.values, value)
	return r.Send(value, types.PortOut)
}

func newRecorder() types.Component {
	ret := &recorder{Component: base.New("recorder")}
	ret.AddPort(types.PortIn, types.DirectionIn)
	ret.AddPort(types.PortOut, types.DirectionOut)
	return ret
}

func values(t *testing.T, n *Network, process string) []interface{} {
	node, ok := n.Node(process).(*recorder)
	require.True(t, ok, process)
	return node.values
}

func newRegistry(out *bytes.Buffer) *extension.Components {
	registry := builtin.NewRegistry(builtin.WithWriter(out))
	registry.Register("Recorder", newRecorder)
	registry.Register("Double", unary.Factory(func(v interface{}) (interface{}, error) { return v.(int) * 2, nil }))
	registry.Register("Fail", unary.Factory(func(v interface{}) (interface{}, error) { return nil, errors.New("boom") }))
	return registry
}

func TestNetwork_UnaryChain(t *testing.T) {
	g := graph.New("chain").
		AddProcess("inc", builtin.IncrementOne).
		AddProcess("double", "Double").
		AddProcess("sink", "Recorder").
		Connect("inc", "out", "double", "in").
		Connect("double", "out", "sink", "in").
		AddInitial("3", "inc", "in")

	n := New(g, newRegistry(new(bytes.Buffer)))
	require.NoError(t, n.Start(context.Background()))
	require.NoError(t, n.RunIteration(context.Background()))
	assert.Equal(t, []interface{}{8}, values(t, n, "sink"), "(3+1)*2 exactly once")
	assert.Empty(t, n.Pending())
}

func TestNetwork_Invert(t *testing.T) {
	g := graph.New("invert").
		AddProcess("not", builtin.Invert).
		AddProcess("sink", "Recorder").
		Connect("not", "out", "sink", "in")
	n := New(g, newRegistry(new(bytes.Buffer)))
	require.NoError(t, n.Start(context.Background()))
	require.NoError(t, n.Send("not", "in", true))
	require.NoError(t, n.Send("not", "in", false))
	require.NoError(t, n.RunIteration(context.Background()))
	assert.Equal(t, []interface{}{false, true}, values(t, n, "sink"))
}

func TestNetwork_Join(t *testing.T) {
	g := graph.New("join").
		AddProcess("add", builtin.Add).
		AddProcess("sink", "Recorder").
		Connect("add", "out", "sink", "in")
	n := New(g, newRegistry(new(bytes.Buffer)))
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))

	require.NoError(t, n.Send("add", "a", 2))
	require.NoError(t, n.RunIteration(ctx))
	assert.Empty(t, values(t, n, "sink"))

	require.NoError(t, n.Send("add", "b", 5))
	require.NoError(t, n.RunIteration(ctx))
	assert.Equal(t, []interface{}{7}, values(t, n, "sink"))

	require.NoError(t, n.Send("add", "a", 10))
	require.NoError(t, n.RunIteration(ctx))
	assert.Equal(t, []interface{}{7, 15}, values(t, n, "sink"))
}

func TestNetwork_InitialPacketDeliveredOnce(t *testing.T) {
	g := graph.New("two").
		AddProcess("first", "Recorder").
		AddProcess("second", "Recorder").
		Connect("first", "out", "second", "in").
		AddInitial("abc", "second", "in")
	n := New(g, newRegistry(new(bytes.Buffer)))
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))
	require.Len(t, n.Pending(), 1)

	require.NoError(t, n.RunIteration(ctx))
	assert.Equal(t, []interface{}{"abc"}, values(t, n, "second"))
	assert.Empty(t, values(t, n, "first"), "no value travels the link unless one is sent")

	require.NoError(t, n.RunIteration(ctx))
	assert.Equal(t, []interface{}{"abc"}, values(t, n, "second"))
}

func TestNetwork_InitialPacketCoercion(t *testing.T) {
	g := graph.New("coerce").
		AddProcess("sink", "Recorder").
		AddInitial("3", "sink", "in").
		AddInitial("3.5", "sink", "in").
		AddInitial("abc", "sink", "in")
	n := New(g, newRegistry(new(bytes.Buffer)))
	require.NoError(t, n.Start(context.Background()))
	require.NoError(t, n.RunIteration(context.Background()))
	assert.Equal(t, []interface{}{3, 3.5, "abc"}, values(t, n, "sink"))
}

func TestNetwork_StartErrors(t *testing.T) {
	var testCases = []struct {
		description string
		graph       *graph.Graph
		expect      error
	}{
		{
			description: "undeclared target process",
			graph:       graph.New("g").AddProcess("a", "Recorder").Connect("a", "out", "missing", "in"),
			expect:      types.ErrUnknownProcess,
		},
		{
			description: "undeclared source process",
			graph:       graph.New("g").AddProcess("a", "Recorder").Connect("missing", "out", "a", "in"),
			expect:      types.ErrUnknownProcess,
		},
		{
			description: "unknown component type",
			graph:       graph.New("g").AddProcess("a", "Nope").AddInitial(1, "a", "in"),
			expect:      types.ErrUnknownComponent,
		},
		{
			description: "unknown target port",
			graph:       graph.New("g").AddProcess("a", "Recorder").AddInitial(1, "a", "x"),
			expect:      types.ErrUnknownPort,
		},
		{
			description: "unknown source port",
			graph:       graph.New("g").AddProcess("a", "Recorder").AddProcess("b", "Recorder").Connect("a", "x", "b", "in"),
			expect:      types.ErrUnknownPort,
		},
		{
			description: "neither source nor data",
			graph: &graph.Graph{
				Processes:   map[string]*graph.Process{"a": {Component: "Recorder"}},
				Connections: []*graph.Connection{{Tgt: &graph.Endpoint{Process: "a", Port: "in"}}},
			},
			expect: types.ErrNoSource,
		},
		{
			description: "both source and data",
			graph: &graph.Graph{
				Processes: map[string]*graph.Process{"a": {Component: "Recorder"}},
				Connections: []*graph.Connection{{
					Src:  &graph.Endpoint{Process: "a", Port: "out"},
					Tgt:  &graph.Endpoint{Process: "a", Port: "in"},
					Data: 1,
				}},
			},
			expect: types.ErrAmbiguousConnection,
		},
	}

	for _, testCase := range testCases {
		n := New(testCase.graph, newRegistry(new(bytes.Buffer)))
		err := n.Start(context.Background())
		require.Error(t, err, testCase.description)
		assert.ErrorIs(t, err, testCase.expect, testCase.description)
		assert.True(t, types.IsConfigurationError(err), testCase.description)
		assert.Equal(t, StateStopped, n.State(), testCase.description)
		assert.Empty(t, n.Pending(), testCase.description)
		assert.Empty(t, n.Nodes(), testCase.description)
	}
}

func TestNetwork_StartFailsBeforeDelivery(t *testing.T) {
	out := new(bytes.Buffer)
	g := graph.New("g").
		AddProcess("print", builtin.WriteStdOut).
		AddInitial("hello", "print", "in").
		Connect("print", "out", "ghost", "in")
	n := New(g, newRegistry(out))
	assert.Error(t, n.Start(context.Background()))
	assert.ErrorIs(t, n.RunIteration(context.Background()), types.ErrNotStarted)
	assert.Empty(t, out.String())
}

func TestNetwork_Lifecycle(t *testing.T) {
	g := graph.New("g").AddProcess("sink", "Recorder")
	n := New(g, newRegistry(new(bytes.Buffer)))
	ctx := context.Background()

	assert.Equal(t, StateStopped, n.State())
	assert.ErrorIs(t, n.RunIteration(ctx), types.ErrNotStarted)
	assert.ErrorIs(t, n.Send("sink", "in", 1), types.ErrNotStarted)
	assert.ErrorIs(t, n.Connect("sink", "out", "sink", "in"), types.ErrNotStarted)

	require.NoError(t, n.Start(ctx))
	assert.Equal(t, StateStarted, n.State())
	assert.NotEmpty(t, n.RunID())
	assert.ErrorIs(t, n.Start(ctx), types.ErrAlreadyStarted)

	n.Stop()
	assert.Equal(t, StateStopped, n.State())
	assert.Nil(t, n.Node("sink"))
	n.Stop()
}

func TestNetwork_RestartProducesFreshInstances(t *testing.T) {
	g := graph.New("join").
		AddProcess("add", builtin.Add).
		AddProcess("sink", "Recorder").
		Connect("add", "out", "sink", "in").
		AddInitial("1", "add", "a")
	n := New(g, newRegistry(new(bytes.Buffer)))
	ctx := context.Background()

	require.NoError(t, n.Start(ctx))
	require.NoError(t, n.RunIteration(ctx))
	require.NoError(t, n.Send("add", "b", 2))
	require.NoError(t, n.Send("add", "b", 3))
	firstAdd, firstSink := n.Node("add"), n.Node("sink")
	n.Stop()

	require.NoError(t, n.Start(ctx))
	assert.NotSame(t, firstAdd, n.Node("add"))
	assert.NotSame(t, firstSink, n.Node("sink"))
	require.Len(t, n.Pending(), 1, "only the initial packet is queued again")

	require.NoError(t, n.RunIteration(ctx))
	assert.Empty(t, values(t, n, "sink"), "b was not latched in the fresh join")
	_, ok := n.Node("add").Port("b").Value()
	assert.False(t, ok)
}

func TestNetwork_SnapshotSemantics(t *testing.T) {
	g := graph.New("g").AddProcess("sink", "Recorder")
	registry := newRegistry(new(bytes.Buffer))
	var n *Network
	registry.Register("Feeder", unary.Factory(func(v interface{}) (interface{}, error) {
		return nil, n.Send("sink", "in", v)
	}))
	g.AddProcess("feed", "Feeder").AddInitial("1", "feed", "in").AddInitial("2", "sink", "in")
	n = New(g, registry)
	ctx := context.Background()

	require.NoError(t, n.Start(ctx))
	require.NoError(t, n.RunIteration(ctx))
	assert.Equal(t, []interface{}{2}, values(t, n, "sink"), "packets queued during an iteration wait")
	require.Len(t, n.Pending(), 1)

	require.NoError(t, n.RunIteration(ctx))
	assert.Equal(t, []interface{}{2, 1}, values(t, n, "sink"))
}

func TestNetwork_ComponentFailure(t *testing.T) {
	g := graph.New("g").
		AddProcess("first", "Recorder").
		AddProcess("fail", "Fail").
		AddProcess("last", "Recorder").
		AddInitial("1", "first", "in").
		AddInitial("2", "fail", "in").
		AddInitial("3", "last", "in")
	m := metrics.New()
	n := New(g, newRegistry(new(bytes.Buffer)), WithMetrics(m))
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))

	err := n.RunIteration(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fail.in")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []interface{}{1}, values(t, n, "first"))

	pending := n.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "last", pending[0].Process)

	require.NoError(t, n.RunIteration(ctx))
	assert.Equal(t, []interface{}{3}, values(t, n, "last"))
}

func TestNetwork_MaxDepth(t *testing.T) {
	g := graph.New("loop").
		AddProcess("a", "Recorder").
		AddProcess("b", "Recorder").
		Connect("a", "out", "b", "in").
		Connect("b", "out", "a", "in").
		AddInitial("x", "a", "in")
	n := New(g, newRegistry(new(bytes.Buffer)), WithMaxDepth(10))
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))

	err := n.RunIteration(ctx)
	assert.ErrorIs(t, err, types.ErrMaxDepthExceeded)
	assert.Len(t, values(t, n, "a"), 5)
	assert.Len(t, values(t, n, "b"), 5)
}

func TestNetwork_Connect(t *testing.T) {
	g := graph.New("g").
		AddProcess("src", "Recorder").
		AddProcess("x", "Recorder").
		AddProcess("y", "Recorder").
		Connect("src", "out", "x", "in")
	n := New(g, newRegistry(new(bytes.Buffer)))
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))

	require.NoError(t, n.Connect("src", "out", "y", "in"))
	require.NoError(t, n.Send("src", "in", 1))
	require.NoError(t, n.RunIteration(ctx))
	assert.Empty(t, values(t, n, "x"), "the new connection replaces the old target")
	assert.Equal(t, []interface{}{1}, values(t, n, "y"))

	assert.ErrorIs(t, n.Connect("src", "out", "nope", "in"), types.ErrUnknownProcess)
	assert.ErrorIs(t, n.Send("y", "nope", 1), types.ErrUnknownPort)
}

func TestNetwork_Run(t *testing.T) {
	out := new(bytes.Buffer)
	g := graph.New("sum").
		AddProcess("add", builtin.Add).
		AddProcess("print", builtin.WriteStdOut).
		Connect("add", "out", "print", "in").
		AddInitial("2", "add", "a").
		AddInitial("40", "add", "b")
	n := New(g, newRegistry(out))
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))
	require.NoError(t, n.Run(ctx))
	assert.Equal(t, "42\n", out.String())
}

func TestNetwork_RunIterationLimit(t *testing.T) {
	g := graph.New("g").AddProcess("sink", "Recorder")
	registry := newRegistry(new(bytes.Buffer))
	var n *Network
	registry.Register("Echo", unary.Factory(func(v interface{}) (interface{}, error) {
		return nil, n.Send("echo", "in", v)
	}))
	g.AddProcess("echo", "Echo").AddInitial("1", "echo", "in")
	n = New(g, registry, WithMaxIterations(3))
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))
	assert.ErrorIs(t, n.Run(ctx), types.ErrIterationLimit)
}

func TestNetwork_Cancelled(t *testing.T) {
	g := graph.New("g").AddProcess("sink", "Recorder").AddInitial("1", "sink", "in")
	n := New(g, newRegistry(new(bytes.Buffer)))
	require.NoError(t, n.Start(context.Background()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.RunIteration(ctx), context.Canceled)
	assert.Len(t, n.Pending(), 1)
}

func TestNetwork_StoppedDuringIteration(t *testing.T) {
	var n *Network
	registry := newRegistry(new(bytes.Buffer))
	registry.Register("Stopper", unary.Factory(func(v interface{}) (interface{}, error) {
		n.Stop()
		return v, nil
	}))
	g := graph.New("g").
		AddProcess("stop", "Stopper").
		AddProcess("sink", "Recorder").
		AddInitial("1", "stop", "in").
		AddInitial("2", "sink", "in")
	n = New(g, registry)
	require.NoError(t, n.Start(context.Background()))

	var err error
	assert.NotPanics(t, func() { err = n.RunIteration(context.Background()) })
	assert.ErrorIs(t, err, types.ErrNotStarted)
	assert.Equal(t, StateStopped, n.State())
	assert.Empty(t, n.Pending())

	require.NoError(t, n.Start(context.Background()))
	assert.Len(t, n.Pending(), 2, "restart queues the initial packets again")
}
