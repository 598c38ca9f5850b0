// Package benchmark compares logfacade with other Go logging libraries.
// It is a separate module so the comparison libraries stay out of the main
// module's dependencies.
//
//	go test -bench=Competitive -benchmem ./...
package benchmark
