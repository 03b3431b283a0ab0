package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "authkeeper.toml", "-d", "data"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "authkeeper.toml"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-d", "data"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "-y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-b", "-d", "data"},
			allowedFlags: []string{"-b", "-d"},
			want:         []string{"-b", "-d", "data"},
		},
		{
			name:         "several allowed flags keep order",
			args:         []string{"-b", "sqlite", "-c", "conf.json", "-l", "debug"},
			allowedFlags: []string{"-l", "-b"},
			want:         []string{"-b", "sqlite", "-l", "debug"},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"-c", "/etc/authkeeper.toml"}, want: "/etc/authkeeper.toml"},
		{name: "long", args: []string{"-config", "/etc/authkeeper.json"}, want: "/etc/authkeeper.json"},
		{name: "other flags only", args: []string{"-d", "data", "-b", "sqlite"}, want: ""},
		{name: "last wins", args: []string{"-c", "1.json", "-config", "2.json"}, want: "2.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}
