// Package output renders CLI results.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned tables built from structs, slices and maps
//   - json.go, yaml.go: machine-readable output
//   - spinner.go: progress animation while the session hydrates
//   - prompt.go: yes/no confirmation
package output
