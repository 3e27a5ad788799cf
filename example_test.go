package reactivity

import "fmt"

// ExampleNewComputed_basic is scenario 1: "basic compute" (spec §8).
func ExampleNewComputed_basic() {
	calls := 0
	a := Reactive(1)
	b := Reactive(2)
	c := NewComputed(func() int {
		calls++
		return a.Value() + b.Value()
	})

	fmt.Println(c.Value())

	a.Set(3)
	fmt.Println(c.Value())

	fmt.Println(calls)

	// Output:
	// 3
	// 5
	// 2
}

// ExampleNewAsyncEffect_coalescing is scenario 2: "async coalescing" (spec
// §8): three writes inside one macro-tick only wake the effect once.
func ExampleNewAsyncEffect_coalescing() {
	a := Reactive(0)
	calls := 0
	var last int

	h := NewAsyncEffectFunc(func() {
		calls++
		last = a.Value()
	})
	defer h.Destroy()

	<-NextTick() // settle the initial run

	a.Set(1)
	a.Set(2)
	a.Set(3)

	<-NextTick() // one drain services the whole burst

	fmt.Println(calls)
	fmt.Println(last)

	// Output:
	// 2
	// 3
}

// ExampleWatchValue_immediate is scenario 3: "immediate watch" (spec §8).
func ExampleWatchValue_immediate() {
	a := Reactive(1)

	h := WatchValue(func() int { return a.Value() },
		func(newValue, oldValue int, onCleanup func(func())) {
			fmt.Println(newValue, oldValue)
		},
		WithImmediate[int](),
	)
	defer h.Destroy()

	a.Set(1) // same value: no call
	a.Set(2)

	// Output:
	// 1 0
	// 2 1
}

// ExampleNewSynchronized_caching is scenario 4: "synchronized caching"
// (spec §8).
func ExampleNewSynchronized_caching() {
	calls := 0
	getter := func() int {
		calls++
		return calls
	}

	s := NewSynchronized(getter, func(notify func()) func() {
		return func() {}
	})

	s.Value()
	s.Value()
	fmt.Println(calls) // 2: unsubscribed, every read re-invokes getter

	h := NewEffectFunc(func() {
		s.Value()
	})
	fmt.Println(calls) // 3: subscribing forces one fresh read

	s.Value()
	fmt.Println(calls) // still 3: cached while subscribed

	h.Destroy()
	s.Value()
	fmt.Println(calls) // 4: unsubscribed again

	// Output:
	// 2
	// 3
	// 3
	// 4
}

// ExampleNewLinkedIdentity_reset is scenario 5: "linked reset" (spec §8).
func ExampleNewLinkedIdentity_reset() {
	options := Reactive([]string{"a", "b", "c"})
	current := NewLinkedIdentity(func() string { return options.Value()[0] })

	fmt.Println(current.Value())

	current.Set("b")
	fmt.Println(current.Value())

	options.Set([]string{"x", "y"})
	fmt.Println(current.Value())

	// Output:
	// a
	// b
	// x
}

// ExampleNewEffect_cleanupOrdering is scenario 6: "cleanup ordering" (spec
// §8).
func ExampleNewEffect_cleanupOrdering() {
	r := Reactive(1)

	h := NewEffect(func() func() {
		n := r.Value()
		fmt.Println("enter", n)
		return func() { fmt.Println("exit", n) }
	})

	r.Set(2)
	r.Set(4)
	h.Destroy()

	// Output:
	// enter 1
	// exit 1
	// enter 2
	// exit 2
	// enter 4
	// exit 4
}
