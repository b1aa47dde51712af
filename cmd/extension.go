package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// RunExtension attempts to find and execute an external stocksim-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The extension receives the configuration in its environment: the server URL,
// the seed, the tick interval...
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "stocksim-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), Env.Environ()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		log.Printf("Error executing external command %q: %v", externalCmdName, err)
		return true, 1 // Indicate that an attempt was made, but it failed
	}

	return true, 0
}

// Environ returns c as environment variables, the inverse of ConfigFromEnv.
func (c Config) Environ() []string {
	env := []string{
		EnvAddr + "=" + c.Addr,
		EnvTickInterval + "=" + c.Interval.String(),
		EnvCash + "=" + strconv.FormatFloat(c.Cash, 'f', -1, 64),
		EnvServer + "=" + c.Server,
	}
	if c.Seed != 0 {
		env = append(env, fmt.Sprintf("%s=%d", EnvSeed, c.Seed))
	}
	if c.Universe != "" {
		env = append(env, EnvUniverse+"="+c.Universe)
	}
	return env
}
