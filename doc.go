package goargs

// Package goargs provides:
//
// - POSIX/GNU command-line parsing driven by a declarative Schema (short/long
//   options, clusters, attached and separate values, "--", subcommands)
// - A stable error model via Issues (code, offending argument, argv index)
// - Help and version text synthesis in the classic usage/options/arguments
//   format, with opt-in color and terminal-width wrapping
// - Typed value access through converters and the generic Get/GetAll helpers
//
// Design policy:
// - Keep only public APIs in the root package; put the lexer, matcher and
//   compiled schema under internal/.
// - Place the builder DSL under dsl/, converters under convert/, schema-as-data
//   loading under manifest/, and the CLI under cmd/goargs.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  s := dsl.New("myprog", "0.3.1").
//          Flag("-f", "--force").Help("overwrite destination").
//          Option("-l", "--log").Value("level", convert.Uint8()).Help("set log level").
//          Flag("-h", "--help").Help("print help message").
//          Operand("src").Variadic().Help("source file(s)").
//          Operand("dest").Help("destination").
//          MustBuild()
//
//  res := goargs.ParseOrExit(s)
//  force := res.Bool("force")
//  level, ok := goargs.Get[uint8](res, "log")
//  srcs := res.Strings("src")
