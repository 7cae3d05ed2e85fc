package sema

import "rlint/internal/source"

// baseGlobals lists names from base R (and the default attached packages)
// that scripts reference without declaring. The list is deliberately not
// exhaustive: undefined-variable findings are candidates, and config
// `globals` extends this set per project.
var baseGlobals = []string{
	// Language-level.
	"T", "F", "pi", "LETTERS", "letters", "month.abb", "month.name",
	"...", "..1", "..2", "..3",

	// Core vocabulary.
	"library", "require", "requireNamespace", "source", "print", "cat",
	"message", "warning", "stop", "stopifnot", "suppressWarnings",
	"suppressMessages", "on.exit", "invisible", "return", "missing",
	"nargs", "interactive", "Recall", "do.call", "match.arg", "match.call",
	"sys.call", "sys.function", "Sys.time", "Sys.Date", "Sys.getenv",
	"Sys.setenv", "Sys.sleep",

	// Vectors and structure.
	"c", "vector", "list", "unlist", "length", "names", "setNames", "rev",
	"seq", "seq_len", "seq_along", "rep", "head", "tail", "append",
	"matrix", "array", "dim", "nrow", "ncol", "NROW", "NCOL", "rbind",
	"cbind", "t", "data.frame", "as.data.frame", "merge", "split",
	"expand.grid", "structure", "attr", "attributes", "class", "inherits",
	"unclass", "oldClass", "levels", "factor", "droplevels", "table",

	// Apply family and functional helpers.
	"apply", "lapply", "sapply", "vapply", "mapply", "Map", "Reduce",
	"Filter", "Position", "Find", "tapply", "by", "outer", "function",

	// Predicates and coercion.
	"is.null", "is.na", "is.nan", "is.finite", "is.infinite", "is.numeric",
	"is.character", "is.logical", "is.function", "is.list", "is.vector",
	"is.factor", "is.data.frame", "is.matrix", "is.element",
	"as.numeric", "as.integer", "as.double", "as.character", "as.logical",
	"as.vector", "as.list", "as.factor", "as.matrix", "as.Date",

	// Math and stats.
	"sum", "prod", "mean", "median", "var", "sd", "min", "max", "pmin",
	"pmax", "range", "abs", "sqrt", "exp", "log", "log2", "log10", "log1p",
	"floor", "ceiling", "round", "signif", "trunc", "sign", "cumsum",
	"cumprod", "cummax", "cummin", "which", "which.max", "which.min",
	"order", "sort", "rank", "unique", "duplicated", "anyDuplicated",
	"rev", "sample", "runif", "rnorm", "rbinom", "rpois", "set.seed",
	"quantile", "cor", "cov", "scale", "colSums", "rowSums", "colMeans",
	"rowMeans", "crossprod", "solve", "diag",

	// Logic.
	"all", "any", "xor", "isTRUE", "isFALSE", "ifelse", "switch",
	"identical", "all.equal", "Negate", "exists", "get", "get0", "mget",
	"assign", "rm", "local", "environment", "new.env", "globalenv",
	"emptyenv", "parent.frame", "parent.env", "sys.frame",

	// Strings.
	"paste", "paste0", "sprintf", "format", "formatC", "prettyNum",
	"nchar", "substr", "substring", "strsplit", "sub", "gsub", "grepl",
	"grep", "regmatches", "regexpr", "gregexpr", "toupper", "tolower",
	"trimws", "startsWith", "endsWith", "chartr", "sprintf", "shQuote",
	"dQuote", "sQuote", "toString", "make.names", "make.unique",

	// I/O.
	"readLines", "writeLines", "readRDS", "saveRDS", "load", "save",
	"read.csv", "write.csv", "read.table", "write.table", "scan", "file",
	"connection", "close", "url", "gzfile", "file.path", "file.exists",
	"file.remove", "dir.create", "dir.exists", "list.files", "basename",
	"dirname", "normalizePath", "path.expand", "tempfile", "tempdir",
	"download.file",

	// Condition handling.
	"try", "tryCatch", "withCallingHandlers", "conditionMessage",
	"conditionCall", "simpleError", "simpleWarning", "simpleCondition",
	"signalCondition", "restart", "invokeRestart", "computeRestarts",

	// Misc frequently seen.
	"str", "summary", "plot", "lines", "points", "hist", "boxplot",
	"barplot", "legend", "par", "dev.off", "pdf", "png", "options",
	"getOption", "nlevels", "nchar", "utils::head", "identity", "rev",
	"Vectorize", "stopifnot", "packageVersion", "R.version",
}

// DefaultGlobals interns the base globals set plus extras from config.
func DefaultGlobals(interner *source.Interner, extra []string) map[source.StringID]struct{} {
	out := make(map[source.StringID]struct{}, len(baseGlobals)+len(extra))
	for _, name := range baseGlobals {
		out[interner.Intern(name)] = struct{}{}
	}
	for _, name := range extra {
		out[interner.Intern(name)] = struct{}{}
	}
	return out
}
