// Package dsl provides the chained schema builder for goargs.
//
// Overview
//   - Declare a program with New(name, version), then chain Flag/Option/
//     Operand/Command steps; each step refines the argument it opened
//     (Value/Optional/Variadic/Conflicts/Help) before the next begins.
//   - Options whose long name is --help or --version become the intercepted
//     help/version actions.
//   - Subcommands compose from independently built schemas: Command("command").
//     Sub(addSchema, "Add file(s)").Sub(removeSchema, "Remove file(s)", "rm").
//   - Build returns (*goargs.Schema, error) with every construction defect
//     collected as Issues; MustBuild panics, treating defects as programmer
//     errors.
//
// Example
//
//	s := dsl.New("myprog", "0.3.1").
//	        Flag("-f", "--force").Help("overwrite destination").
//	        Option("-l", "--log").Value("level", convert.Uint8()).Help("set log level").
//	        Flag("-h", "--help").Help("print help message").
//	        Operand("src").Variadic().Help("source file(s)").
//	        Operand("dest").Help("destination").
//	        MustBuild()
package dsl
