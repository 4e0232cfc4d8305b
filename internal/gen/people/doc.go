// Package people holds the generator's output for person.yaml, checked in
// so that it is compiled and exercised with the rest of the module.
package people

//go:generate go run github.com/oy3o/jce/cmd/jce gen --schema person.yaml --package people -o person_jce.go
