// Package registry is the orchestration runtime's name-keyed store of
// registered sequences and their handler tables. Everyone else consults it
// by name; only registry itself mutates the underlying maps.
//
// # Basic Usage
//
//	reg := registry.New(logger)
//	err := reg.Register(mySequence, myHandlers)
//
//	if reg.Has("Demo.ping-symphony") {
//	    seq, _ := reg.Get("Demo.ping-symphony")
//	}
package registry
