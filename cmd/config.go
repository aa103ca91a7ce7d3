package cmd

import (
	"github.com/lambda-feedback/routeshim/util/conf"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// parseConfig parses the config of the current command from defaults,
// the --config file, the --env-file file, env vars and flags. keys maps
// flag names to config keys; the env vars of those flags map to the
// same keys, in the environment and in the env file alike.
func parseConfig[C any](ctx *cli.Context, log *zap.Logger, defaults conf.DefaultConfig, keys map[string]string) (C, error) {
	return conf.Parse[C](conf.ParseOptions{
		Cli:         ctx,
		CliMap:      keys,
		EnvMap:      flagEnvKeys(ctx.Command.Flags, keys),
		Defaults:    defaults,
		FileName:    ctx.Path("config"),
		EnvFileName: ctx.Path("env-file"),
		Log:         log,
	})
}

func flagEnvKeys(flags []cli.Flag, keys map[string]string) map[string]string {
	envKeys := make(map[string]string)

	for _, flag := range flags {
		key, ok := keys[flag.Names()[0]]
		if !ok {
			continue
		}

		docFlag, ok := flag.(cli.DocGenerationFlag)
		if !ok {
			continue
		}

		for _, env := range docFlag.GetEnvVars() {
			envKeys[env] = key
		}
	}

	return envKeys
}
