// Package flagx lets several configuration stages share os.Args: each stage
// keeps only the flags it owns and parses them with its own FlagSet.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// flagName returns the bare name of a flag token ("-c", "--config=x" -> "c",
// "config"). The second result is false for tokens that are not flags.
func flagName(arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '-' || arg == "--" {
		return "", false
	}
	name := strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	return name, name != ""
}

// FilterArgs keeps the tokens of args that belong to one of the named flags.
// Names are given without dashes; "-x" and "--x" are treated alike, as the
// flag package does. Both "-x value" and "-x=value" forms are kept. A token
// following a flag is taken as its value unless it looks like a flag itself.
func FilterArgs(args []string, names ...string) []string {
	owned := make(map[string]bool, len(names))
	for _, n := range names {
		owned[strings.TrimLeft(n, "-")] = true
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, ok := flagName(args[i])
		if !ok || !owned[name] {
			continue
		}
		filtered = append(filtered, args[i])
		if strings.Contains(args[i], "=") {
			continue
		}
		if i+1 < len(args) {
			if _, next := flagName(args[i+1]); !next {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}
	return filtered
}

// LookupString returns the value of a string flag known under any of names,
// or "" when absent. The last occurrence wins.
func LookupString(args []string, names ...string) string {
	var value string

	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, strings.TrimLeft(n, "-"), "", "")
	}
	_ = fs.Parse(FilterArgs(args, names...))

	return value
}

// ConfigFileFlag returns the JSON config path given with -c or -config.
func ConfigFileFlag() string {
	return LookupString(os.Args[1:], "c", "config")
}

// EnvFileFlag returns the env file path given with -e or -env-file.
func EnvFileFlag() string {
	return LookupString(os.Args[1:], "e", "env-file")
}
