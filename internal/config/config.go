package config

// Config holds the resolved application configuration.
type Config struct {
	Global   Global
	Paths    Paths
	Solver   Solver
	Warnings []string
}

// Global contains settings that apply across all commands.
type Global struct {
	Debug      bool
	LogFormat  string
	Quiet      bool
	ConfigPath string
}

// Paths contains the file system locations used by the application.
type Paths struct {
	// OutputsDir is the root under which per-run directories are created.
	OutputsDir string

	// BinDir is where auto-built solver binaries are written and the first
	// extra location searched during executable resolution.
	BinDir string

	// SourcesDir is the root for solver source files registered in
	// executable bindings.
	SourcesDir string
}

// Solver contains settings for resolving and building the solver binary.
type Solver struct {
	// Executable overrides executable resolution entirely when set.
	// Populated from WAVERUN_SOLVER_EXE or the config file.
	Executable string

	// Compiler is the native toolchain used by the auto-builder.
	// Populated from WAVERUN_FC; defaults to gfortran.
	Compiler string

	// CompilerFlags are passed to the compiler before the source list.
	// Populated from WAVERUN_FFLAGS; defaults to an optimized build.
	CompilerFlags string

	// SearchDirs are additional directories consulted during executable
	// resolution after the PATH lookup.
	SearchDirs []string
}
