// Package options holds pipeline execution options in a flat, name-keyed
// store and provides the sources that populate it.
//
// # Store
//
// Store maps option names (e.g. "project", "num_workers") to typed values:
// string, int, bool, []string, or any opaque value set programmatically.
// Reading an unset option returns the zero value; it is never an error.
//
//	s := options.New()
//	s.Set(options.Project, "my-project")
//	s.Set(options.Experiments, []string{"use_runner_v2"})
//	fmt.Println(s.String(options.Project))
//
// Typed views (Worker, GoogleCloud, Debug, Portable) are read-only snapshots
// grouping related options.
//
// # Sources
//
//   - Parse: command-line tokens (--key=value, --key value, --flag)
//   - LoadFile: YAML or JSON documents
//   - Loader.LoadConfigMap: Kubernetes ConfigMaps (cm://namespace/name)
//
// Options whose kind is list (experiments, dataflow_service_options,
// environment_options) accumulate across repeated tokens.
package options
