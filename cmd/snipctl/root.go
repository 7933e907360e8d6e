package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PabloPavan/snipdeck/internal"
	"github.com/PabloPavan/snipdeck/internal/snippets"
	"github.com/PabloPavan/snipdeck/internal/viewer"
)

const (
	keyAPIURL    = "api_url"
	keyAPIKey    = "api_key"
	keyPublicURL = "public_url"
	keyOutput    = "output"
	keyTimeout   = "timeout"
)

type cli struct {
	v         *viper.Viper
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	clipboard viewer.Clipboard
}

func newCLI() *cli {
	return &cli{
		v:         viper.New(),
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
		clipboard: systemClipboard{},
	}
}

func newRootCmd(c *cli) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "snipctl",
		Short: "Create, view and share snippets from the terminal",
		Long: `snipctl talks to the snippet service directly.

Configuration is read from flags, SNIPDECK_* environment variables and
$HOME/.snipdeck.yaml, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cfgFile)
		},
	}
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.snipdeck.yaml)")
	flags.String("api-url", "http://localhost:8000", "snippet service base URL")
	flags.String("api-key", "", "API key sent to the snippet service")
	flags.String("public-url", "http://localhost:8080", "base URL used for share links")
	flags.StringP("output", "o", "text", "output format: text, json, yaml")
	flags.Duration("timeout", 10*time.Second, "snippet service request timeout")

	_ = c.v.BindPFlag(keyAPIURL, flags.Lookup("api-url"))
	_ = c.v.BindPFlag(keyAPIKey, flags.Lookup("api-key"))
	_ = c.v.BindPFlag(keyPublicURL, flags.Lookup("public-url"))
	_ = c.v.BindPFlag(keyOutput, flags.Lookup("output"))
	_ = c.v.BindPFlag(keyTimeout, flags.Lookup("timeout"))

	root.AddCommand(
		newLanguagesCmd(c),
		newViewCmd(c),
		newCreateCmd(c),
		newCopyCmd(c),
		newShareCmd(c),
	)
	return root
}

func (c *cli) loadConfig(cfgFile string) error {
	c.v.SetEnvPrefix("SNIPDECK")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		c.v.AddConfigPath(home)
		c.v.SetConfigName(".snipdeck")
		c.v.SetConfigType("yaml")
	}

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", filepath.Base(c.v.ConfigFileUsed()), err)
	}
	return nil
}

func (c *cli) outputFormat() (string, error) {
	f := strings.ToLower(strings.TrimSpace(c.v.GetString(keyOutput)))
	switch f {
	case "", "text":
		return "text", nil
	case "json", "yaml":
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use text, json or yaml)", f)
	}
}

func (c *cli) client() *snippets.Client {
	client := snippets.NewClient(c.v.GetString(keyAPIURL), snippets.NewInstrumentedClient(c.v.GetDuration(keyTimeout)))
	client.APIKey = strings.TrimSpace(c.v.GetString(keyAPIKey))
	return client
}

func (c *cli) shareURL(slug string) string {
	return viewer.ShareURL(internal.TrimBaseURL(c.v.GetString(keyPublicURL)), slug)
}
