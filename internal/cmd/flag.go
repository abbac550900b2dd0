package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type flagType int

const (
	flagTypeString flagType = iota
	flagTypeBool
	flagTypeStringArray
)

type commandLineFlag struct {
	name, shorthand, defaultValue, usage string
	typ                                  flagType
	required                             bool
}

var (
	configFlag = commandLineFlag{
		name:      "config",
		shorthand: "c",
		usage:     "config file (default is $HOME/.config/waverun/config.yaml)",
	}
	quietFlag = commandLineFlag{
		name:      "quiet",
		shorthand: "q",
		usage:     "suppress output to stderr",
		typ:       flagTypeBool,
	}
	scenarioFlag = commandLineFlag{
		name:      "scenario",
		shorthand: "s",
		usage:     "scenario id (1=dirichlet, 2=neumann, 3=variable-speed, 4=damped)",
		required:  true,
	}
	setFlag = commandLineFlag{
		name:      "set",
		usage:     "parameter override as key=value (repeatable)",
		typ:       flagTypeStringArray,
	}
	executableFlag = commandLineFlag{
		name:      "executable",
		shorthand: "e",
		usage:     "explicit solver executable path (bypasses resolution)",
	}
	fileFlag = commandLineFlag{
		name:      "file",
		shorthand: "f",
		usage:     "solution sample file (CSV or whitespace table)",
		required:  true,
	}
	refFlag = commandLineFlag{
		name:      "ref",
		shorthand: "r",
		usage:     "reference solution sample file",
		required:  true,
	}
	jsonFlag = commandLineFlag{
		name:  "json",
		usage: "emit machine-readable JSON instead of a table",
		typ:   flagTypeBool,
	}
	buildFlag = commandLineFlag{
		name:  "build",
		usage: "compile the solver from registered sources when resolution fails",
		typ:   flagTypeBool,
	}
)

func initFlags(cmd *cobra.Command, addFlags ...commandLineFlag) {
	flags := append([]commandLineFlag{configFlag, quietFlag}, addFlags...)
	for _, flag := range flags {
		switch flag.typ {
		case flagTypeBool:
			cmd.Flags().BoolP(flag.name, flag.shorthand, flag.defaultValue == "true", flag.usage)
		case flagTypeStringArray:
			cmd.Flags().StringArrayP(flag.name, flag.shorthand, nil, flag.usage)
		default:
			cmd.Flags().StringP(flag.name, flag.shorthand, flag.defaultValue, flag.usage)
		}
		if flag.required {
			if err := cmd.MarkFlagRequired(flag.name); err != nil {
				fmt.Printf("failed to mark flag %s as required: %v\n", flag.name, err)
			}
		}
	}
}

func bindFlags(cmd *cobra.Command, addFlags ...commandLineFlag) {
	flags := append([]commandLineFlag{configFlag}, addFlags...)
	for _, flag := range flags {
		if pf := cmd.Flags().Lookup(flag.name); pf != nil {
			_ = viper.BindPFlag(flag.name, pf)
		}
	}
}
