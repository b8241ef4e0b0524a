package cli

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

type missingValue struct {
	code    int
	subject string
}

// Value flags and the numbered error reported when their value is absent.
var missingValueErrors = map[string]missingValue{
	"host":     {1, "The host"},
	"database": {2, "The database name"},
	"port":     {3, "The server port"},
	"user":     {4, "The user name"},
	"password": {5, "The user password"},
}

// checkFlagValues scans args before they are parsed and reports, in command
// line order, the first option that is unknown or lacks its value.
//
// A value flag consumes the next token whatever it looks like, so only a
// value flag at the very end of the command line (or given as "--flag=")
// misses its value. Scanning stops at "--".
func checkFlagValues(flags *pflag.FlagSet, args []string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		hasNext := i+1 < len(args)

		switch {
		case arg == "--":
			return nil

		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg[2:], "=")
			flag := flags.Lookup(name)
			if flag == nil {
				return unknownOption("--" + name)
			}
			if !takesValue(flag) {
				continue
			}
			if hasValue {
				if value == "" {
					return missingValueError(flag)
				}
				continue
			}
			if !hasNext {
				return missingValueError(flag)
			}
			i++

		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			consumesNext, err := checkShorthands(flags, arg[1:], hasNext)
			if err != nil {
				return err
			}
			if consumesNext {
				i++
			}
		}
	}
	return nil
}

// checkShorthands walks a cluster such as "msh". A value flag takes the rest
// of the cluster as its value, or the next token when it is last.
func checkShorthands(flags *pflag.FlagSet, cluster string, hasNext bool) (bool, error) {
	for j := 0; j < len(cluster); j++ {
		shorthand := cluster[j : j+1]
		flag := flags.ShorthandLookup(shorthand)
		if flag == nil {
			return false, unknownOption("-" + shorthand)
		}

		rest := cluster[j+1:]
		if strings.HasPrefix(rest, "=") {
			if takesValue(flag) && rest == "=" {
				return false, missingValueError(flag)
			}
			return false, nil
		}
		if !takesValue(flag) {
			continue
		}
		if rest != "" {
			return false, nil
		}
		if !hasNext {
			return false, missingValueError(flag)
		}
		return true, nil
	}
	return false, nil
}

// takesValue excludes boolean flags, which pflag marks with an implicit value.
func takesValue(flag *pflag.Flag) bool {
	return flag.NoOptDefVal == ""
}

func missingValueError(flag *pflag.Flag) error {
	mv, ok := missingValueErrors[flag.Name]
	if !ok {
		return pgsqlclient.NewUsageError(8, "Option '--%s' requires a value.", flag.Name)
	}
	return pgsqlclient.NewUsageError(mv.code, "%s is not specified for '-%s' option.", mv.subject, flag.Shorthand)
}

func unknownOption(option string) error {
	return pgsqlclient.NewUsageError(8, "Unknown option '%s'.", option)
}
