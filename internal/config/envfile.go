package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvFileVars reads the configured dotenv file. The default file is optional;
// a file named explicitly must exist.
func (c Config) EnvFileVars() (map[string]string, error) {
	if c.EnvFile == "" {
		return nil, nil
	}
	path := c.Path(c.EnvFile)

	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) && c.EnvFile == DefaultEnvFile {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return vars, nil
}
