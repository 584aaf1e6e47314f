package process

import "os/exec"

// Config describes how the external stylesheet compiler is executed.
// It is embedded in the build configuration file under "lessc".
type Config struct {
	Command     string            `yaml:"command" json:"command" mapstructure:"command"`
	Args        []string          `yaml:"args" json:"args" mapstructure:"args"`
	Environment map[string]string `yaml:"env" json:"env" mapstructure:"env"`
}

// DefaultConfig runs lessc from PATH.
func DefaultConfig() Config {
	return Config{Command: "lessc"}
}

// Available reports whether the configured command can be found.
func (c Config) Available() bool {
	cmd := c.Command
	if cmd == "" {
		cmd = DefaultConfig().Command
	}
	_, err := exec.LookPath(cmd)
	return err == nil
}
