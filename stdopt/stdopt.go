// Package stdopt declares the standard Option keys every toolchain and
// emitter in kiln agrees on, grounded on the original source's
// modules/standardoptions.h. Centralizing them in one leaf-ish package
// (it depends only on option, command, postprocess, and toolchain, never
// on project) avoids an import cycle between project and toolchain/gcc,
// both of which need these keys.
package stdopt

import (
	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/postprocess"
	"go.kiln.build/kiln/toolchain"
)

// Platform is the target CPU tag, e.g. "x64". Scalar, overwrite.
var Platform = option.NewKey[string]("Platform", option.Overwrite[string], option.NoDedup[string])

// IncludePaths, Files, Libs, GeneratorDependencies are ordered path
// sequences. Append, stable-dedup.
var (
	IncludePaths          = pathSeqKey("IncludePaths")
	Files                 = pathSeqKey("Files")
	Libs                  = pathSeqKey("Libs")
	GeneratorDependencies = pathSeqKey("GeneratorDependencies")
)

// Defines, Features, Frameworks are ordered string sequences.
var (
	Defines    = pathSeqKey("Defines")
	Features   = pathSeqKey("Features")
	Frameworks = pathSeqKey("Frameworks")
)

func pathSeqKey(name string) option.Key[[]string] {
	return option.NewKey[[]string](name, option.AppendSlice[string], option.DedupSlice[string]())
}

// BundleContents is an ordered sequence of (source, target) pairs
// describing app-bundle contents.
var BundleContents = option.NewKey[[]command.Bundle](
	"BundleContents",
	option.AppendSlice[command.Bundle],
	option.DedupSliceBy(func(b command.Bundle) string { return b.Source + "\x00" + b.Target }),
)

// OutputDir, OutputStem, OutputExtension, OutputPrefix, OutputSuffix,
// OutputPath are all scalar overwrite string/path options controlling
// output naming; see project.Project.OutputPath for how they compose.
var (
	OutputDir       = scalarKey("OutputDir")
	OutputStem      = scalarKey("OutputStem")
	OutputExtension = scalarKey("OutputExtension")
	OutputPrefix    = scalarKey("OutputPrefix")
	OutputSuffix    = scalarKey("OutputSuffix")
	OutputPath      = scalarKey("OutputPath")
)

func scalarKey(name string) option.Key[string] {
	return option.NewKey[string](name, option.Overwrite[string], option.NoDedup[string])
}

// BuildPch, ImportPch are scalar paths controlling precompiled-header
// policy: BuildPch names a header to build a PCH from; ImportPch names a
// header whose PCH should be imported into every compile.
var (
	BuildPch  = scalarKey("BuildPch")
	ImportPch = scalarKey("ImportPch")
)

// DataDir is the build data root (object files, PCH output, etc).
var DataDir = scalarKey("DataDir")

// PostProcess is an ordered sequence of hooks invoked after resolution but
// before toolchain materialization; see postprocess.Run.
var PostProcess = option.NewKey[[]postprocess.Hook](
	"PostProcess",
	option.AppendSlice[postprocess.Hook],
	option.NoDedup[[]postprocess.Hook],
)

// Commands is an ordered sequence of raw CommandEntry records, appended to
// by toolchains and post-processors alike.
var Commands = option.NewKey[[]command.Entry](
	"Commands",
	option.AppendSlice[command.Entry],
	option.DedupSliceBy(command.DedupKey),
)

// Toolchain selects the provider used to materialize a project; overwrite,
// since only one toolchain applies per resolved config.
var Toolchain = option.NewKey[toolchain.Provider]("Toolchain", option.Overwrite[toolchain.Provider], option.NoDedup[toolchain.Provider])

// LinkedOutputs is the internal option a StaticLib's toolchain writes into
// its Public bucket so that downstream linkers see the archive as a link
// input; named with a leading underscore to mark it as an implementation
// detail, matching the original source's `_LinkedOutputs`.
var LinkedOutputs = pathSeqKey("_LinkedOutputs")
